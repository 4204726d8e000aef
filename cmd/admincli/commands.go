package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/habitara/admin-media/pkg/adminmedia"
)

const dateLayout = "2006-01-02"

func (a *app) runNews(ctx context.Context, command string, args []string) error {
	switch command {
	case "list":
		articles, err := a.news.List(ctx)
		if err != nil {
			return err
		}
		for _, art := range articles {
			printNews(&art)
		}
		return nil

	case "get":
		fs := flag.NewFlagSet("news get", flag.ExitOnError)
		id := fs.String("id", "", "article id")
		fs.Parse(args)
		art, err := a.news.Get(ctx, *id)
		if err != nil {
			return err
		}
		printNews(art)
		return nil

	case "create":
		fs := flag.NewFlagSet("news create", flag.ExitOnError)
		title := fs.String("title", "", "title")
		body := fs.String("body", "", "body text")
		author := fs.String("author", "", "author")
		category := fs.String("category", "", "category")
		active := fs.Bool("active", true, "publish immediately")
		publish := fs.String("publish", "", "publish date (YYYY-MM-DD)")
		filePath := fs.String("file", "", "image to attach")
		fs.Parse(args)

		req := adminmedia.CreateNewsRequest{
			Title:    *title,
			Body:     *body,
			Author:   *author,
			Category: *category,
			IsActive: *active,
		}
		if d, err := parseDate(*publish); err != nil {
			return err
		} else if d != nil {
			req.PublishDate = d
		}

		file, cleanup, err := openFile(*filePath)
		if err != nil {
			return err
		}
		defer cleanup()

		art, err := a.news.Create(ctx, req, file)
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", art.ID)
		printNews(art)
		return nil

	case "update":
		fs := flag.NewFlagSet("news update", flag.ExitOnError)
		id := fs.String("id", "", "article id")
		title := fs.String("title", "", "title")
		body := fs.String("body", "", "body text")
		author := fs.String("author", "", "author")
		category := fs.String("category", "", "category")
		active := fs.Bool("active", true, "publish immediately")
		publish := fs.String("publish", "", "publish date (YYYY-MM-DD)")
		filePath := fs.String("file", "", "replacement image")
		removeImage := fs.Bool("remove-image", false, "detach the current image")
		fs.Parse(args)

		req := adminmedia.UpdateNewsRequest{
			Title:       *title,
			Body:        *body,
			Author:      *author,
			Category:    *category,
			IsActive:    *active,
			RemoveImage: *removeImage,
		}
		if d, err := parseDate(*publish); err != nil {
			return err
		} else if d != nil {
			req.PublishDate = d
		}

		file, cleanup, err := openFile(*filePath)
		if err != nil {
			return err
		}
		defer cleanup()

		art, err := a.news.Update(ctx, *id, req, file)
		if err != nil {
			return err
		}
		printNews(art)
		return nil

	case "delete":
		fs := flag.NewFlagSet("news delete", flag.ExitOnError)
		id := fs.String("id", "", "article id")
		fs.Parse(args)
		if err := a.news.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", *id)
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) runPromo(ctx context.Context, command string, args []string) error {
	switch command {
	case "list":
		promos, err := a.promo.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range promos {
			printPromotion(&p)
		}
		return nil

	case "get":
		fs := flag.NewFlagSet("promo get", flag.ExitOnError)
		id := fs.String("id", "", "promotion id")
		fs.Parse(args)
		p, err := a.promo.Get(ctx, *id)
		if err != nil {
			return err
		}
		printPromotion(p)
		return nil

	case "create":
		fs := flag.NewFlagSet("promo create", flag.ExitOnError)
		title := fs.String("title", "", "title")
		desc := fs.String("desc", "", "description")
		active := fs.Bool("active", true, "activate immediately")
		start := fs.String("start", "", "start date (YYYY-MM-DD)")
		end := fs.String("end", "", "end date (YYYY-MM-DD)")
		filePath := fs.String("file", "", "image or video to attach")
		fs.Parse(args)

		req := adminmedia.CreatePromotionRequest{
			Title:       *title,
			Description: *desc,
			IsActive:    *active,
		}
		var err error
		if req.StartDate, err = parseDate(*start); err != nil {
			return err
		}
		if req.EndDate, err = parseDate(*end); err != nil {
			return err
		}

		file, cleanup, err := openFile(*filePath)
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := a.promo.Create(ctx, req, file)
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", p.ID)
		printPromotion(p)
		return nil

	case "update":
		fs := flag.NewFlagSet("promo update", flag.ExitOnError)
		id := fs.String("id", "", "promotion id")
		title := fs.String("title", "", "title")
		desc := fs.String("desc", "", "description")
		active := fs.Bool("active", true, "activate immediately")
		start := fs.String("start", "", "start date (YYYY-MM-DD)")
		end := fs.String("end", "", "end date (YYYY-MM-DD)")
		filePath := fs.String("file", "", "replacement image or video")
		removeMedia := fs.Bool("remove-media", false, "detach the current media")
		fs.Parse(args)

		req := adminmedia.UpdatePromotionRequest{
			Title:       *title,
			Description: *desc,
			IsActive:    *active,
			RemoveMedia: *removeMedia,
		}
		var err error
		if req.StartDate, err = parseDate(*start); err != nil {
			return err
		}
		if req.EndDate, err = parseDate(*end); err != nil {
			return err
		}

		file, cleanup, err := openFile(*filePath)
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := a.promo.Update(ctx, *id, req, file)
		if err != nil {
			return err
		}
		printPromotion(p)
		return nil

	case "delete":
		fs := flag.NewFlagSet("promo delete", flag.ExitOnError)
		id := fs.String("id", "", "promotion id")
		fs.Parse(args)
		if err := a.promo.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", *id)
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// openFile prepares a local file for attachment. An empty path yields a nil
// file, meaning "no media change".
func openFile(path string) (*adminmedia.File, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file := &adminmedia.File{
		Name:        info.Name(),
		ContentType: contentType,
		Size:        info.Size(),
		Reader:      f,
	}
	return file, func() { f.Close() }, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return &t, nil
}

func printNews(a *adminmedia.NewsArticle) {
	fmt.Printf("%s  [%s]  %s\n", a.ID, a.Category, a.Title)
	fmt.Printf("    author: %s  active: %v\n", a.Author, a.IsActive)
	if a.ImageURL != "" {
		fmt.Printf("    image: %s\n", a.ImageURL)
	}
}

func printPromotion(p *adminmedia.Promotion) {
	fmt.Printf("%s  %s\n", p.ID, p.Title)
	fmt.Printf("    active: %v  current: %v\n", p.IsActive, p.IsCurrent(time.Now()))
	if p.MediaURL != "" {
		fmt.Printf("    media (%s): %s\n", p.MediaKind, p.MediaURL)
	}
}
