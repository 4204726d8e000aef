package adminmedia

import "time"

// Request types are explicit per-operation payload builders. Optional fields
// are pointers, so the encoder decides what goes on the wire and no
// strip-null pass ever runs. Media fields are filled in by the services as
// part of the attachment lifecycle; callers set only the plain fields.

// CreateNewsRequest is the payload for creating a news article.
type CreateNewsRequest struct {
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Author      string     `json:"author"`
	Category    string     `json:"category"`
	IsActive    bool       `json:"isActive"`
	PublishDate *time.Time `json:"publishDate,omitempty"`

	ImageURL  string `json:"imageUrl,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
}

// Validate checks the client-side required fields.
func (r *CreateNewsRequest) Validate() error {
	fields := map[string]string{}
	requireText(fields, "title", r.Title)
	requireText(fields, "body", r.Body)
	requireText(fields, "author", r.Author)
	requireText(fields, "category", r.Category)
	if len(fields) > 0 {
		return &ValidationError{Message: "invalid news article", Fields: fields}
	}
	return nil
}

// UpdateNewsRequest is the payload for updating a news article. Setting
// RemoveImage detaches the current image; the superseded blob is cleaned up
// best-effort after the update commits.
type UpdateNewsRequest struct {
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Author      string     `json:"author"`
	Category    string     `json:"category"`
	IsActive    bool       `json:"isActive"`
	PublishDate *time.Time `json:"publishDate,omitempty"`

	RemoveImage bool `json:"-"`

	ImageURL  *string `json:"imageUrl,omitempty"`
	ImagePath *string `json:"imagePath,omitempty"`
}

// Validate checks the client-side required fields.
func (r *UpdateNewsRequest) Validate() error {
	fields := map[string]string{}
	requireText(fields, "title", r.Title)
	requireText(fields, "body", r.Body)
	requireText(fields, "author", r.Author)
	requireText(fields, "category", r.Category)
	if len(fields) > 0 {
		return &ValidationError{Message: "invalid news article", Fields: fields}
	}
	return nil
}

func (r *UpdateNewsRequest) setImage(asset *MediaAsset) {
	r.ImageURL = &asset.URL
	r.ImagePath = &asset.StoragePath
}

func (r *UpdateNewsRequest) clearImage() {
	empty := ""
	r.ImageURL = &empty
	r.ImagePath = &empty
}

// CreatePromotionRequest is the payload for creating a promotion. MediaURL
// may be pre-set when the caller reuses an already-stored blob; otherwise a
// file must accompany the create.
type CreatePromotionRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"isActive"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`

	MediaURL  string    `json:"mediaUrl,omitempty"`
	MediaPath string    `json:"mediaPath,omitempty"`
	MediaKind MediaKind `json:"mediaKind,omitempty"`
}

// Validate checks the client-side required fields and date ordering.
func (r *CreatePromotionRequest) Validate() error {
	fields := map[string]string{}
	requireText(fields, "title", r.Title)
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		fields["endDate"] = "must not be before startDate"
	}
	if len(fields) > 0 {
		return &ValidationError{Message: "invalid promotion", Fields: fields}
	}
	return nil
}

// UpdatePromotionRequest is the payload for updating a promotion. Setting
// RemoveMedia detaches the current attachment; the superseded blob is
// cleaned up best-effort after the update commits.
type UpdatePromotionRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"isActive"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`

	RemoveMedia bool `json:"-"`

	MediaURL  *string    `json:"mediaUrl,omitempty"`
	MediaPath *string    `json:"mediaPath,omitempty"`
	MediaKind *MediaKind `json:"mediaKind,omitempty"`
}

// Validate checks the client-side required fields and date ordering.
func (r *UpdatePromotionRequest) Validate() error {
	fields := map[string]string{}
	requireText(fields, "title", r.Title)
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		fields["endDate"] = "must not be before startDate"
	}
	if len(fields) > 0 {
		return &ValidationError{Message: "invalid promotion", Fields: fields}
	}
	return nil
}

func (r *UpdatePromotionRequest) setMedia(asset *MediaAsset) {
	r.MediaURL = &asset.URL
	r.MediaPath = &asset.StoragePath
	r.MediaKind = &asset.Kind
}

func (r *UpdatePromotionRequest) clearMedia() {
	empty := ""
	none := MediaKind("")
	r.MediaURL = &empty
	r.MediaPath = &empty
	r.MediaKind = &none
}

func requireText(fields map[string]string, name, value string) {
	if value == "" {
		fields[name] = "required"
	}
}
