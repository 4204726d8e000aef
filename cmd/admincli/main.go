// admincli is a command-line front end for the back-office: CRUD for news
// articles and promotions, with optional media attachments uploaded to the
// configured blob bucket.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/habitara/admin-media/pkg/adminmedia"
	"github.com/habitara/admin-media/pkg/adminmedia/config"
)

func usage() {
	fmt.Println("Usage: admincli <resource> <command> [flags]")
	fmt.Println()
	fmt.Println("Resources and commands:")
	fmt.Println("  news  list|get|create|update|delete")
	fmt.Println("  promo list|get|create|update|delete")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  admincli news create -title 'Open day' -body '...' -author Ana -category Eventos -file ./foto.jpg")
	fmt.Println("  admincli promo update -id 42 -title 'Summer Sale' -file ./spot.mp4")
	fmt.Println("  admincli promo delete -id 42")
}

func main() {
	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := cfg.NewBlobStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "storage: %v\n", err)
		os.Exit(1)
	}
	api := cfg.NewAPIClient()

	app := &app{
		news:  adminmedia.NewNewsService(api, adminmedia.NewNewsAttachments(store), log),
		promo: adminmedia.NewPromotionService(api, adminmedia.NewPromotionAttachments(store), log),
	}

	ctx := context.Background()
	resource, command := os.Args[1], os.Args[2]
	args := os.Args[3:]

	switch resource {
	case "news":
		err = app.runNews(ctx, command, args)
	case "promo":
		err = app.runPromo(ctx, command, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", resource, command, err)
		os.Exit(1)
	}
}

type app struct {
	news  *adminmedia.NewsService
	promo *adminmedia.PromotionService
}
