package service

import (
	"github.com/Manulynx/kitaluro/internal/app/model"
)

// MediaRef is the serialization-ready view of one gallery entry, whatever
// table it came from. External marks videos hosted elsewhere (YouTube etc.)
// rather than uploaded files.
type MediaRef struct {
	ID           uint            `json:"id,omitempty"`
	Kind         model.MediaType `json:"kind"`
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
	Title        string          `json:"title,omitempty"`
	AltText      string          `json:"alt_text,omitempty"`
	IsMain       bool            `json:"is_main"`
	External     bool            `json:"external"`
}

func imageRef(img *model.ProductImage) MediaRef {
	return MediaRef{
		ID:      img.ID,
		Kind:    model.MediaTypeImage,
		URL:     img.ImageURL,
		Title:   img.Title,
		AltText: img.AltText,
		IsMain:  img.IsMain,
	}
}

func videoRef(vid *model.ProductVideo) MediaRef {
	return MediaRef{
		ID:           vid.ID,
		Kind:         model.MediaTypeVideo,
		URL:          vid.URL(),
		ThumbnailURL: vid.ThumbnailURL,
		Title:        vid.Title,
		IsMain:       vid.IsMain,
		External:     vid.VideoURL == "" && vid.ExternalURL != "",
	}
}

func legacyRef(m *model.ProductMedia) MediaRef {
	return MediaRef{
		ID:           m.ID,
		Kind:         m.Type,
		URL:          m.URL(),
		ThumbnailURL: m.ThumbnailURL,
		Title:        m.Title,
		AltText:      m.AltText,
		IsMain:       m.IsMain,
		External:     m.Type == model.MediaTypeVideo && m.VideoURL == "" && m.ExternalVideoURL != "",
	}
}

// ResolveMainImage walks the image fallback chain: flagged main entry in the
// current gallery, then the gallery's first entry, then the first legacy
// image, then the product's singular image field. Returns nil when every
// source is empty. The product must be loaded with its media associations.
func ResolveMainImage(p *model.Product) *MediaRef {
	for i := range p.Images {
		if p.Images[i].IsMain && p.Images[i].ImageURL != "" {
			ref := imageRef(&p.Images[i])
			return &ref
		}
	}
	for i := range p.Images {
		if p.Images[i].ImageURL != "" {
			ref := imageRef(&p.Images[i])
			return &ref
		}
	}
	for i := range p.Medias {
		if p.Medias[i].Type == model.MediaTypeImage && p.Medias[i].ImageURL != "" {
			ref := legacyRef(&p.Medias[i])
			return &ref
		}
	}
	if p.ImageURL != "" {
		return &MediaRef{Kind: model.MediaTypeImage, URL: p.ImageURL}
	}
	return nil
}

// ResolveMainVideo applies the same chain for video. An uploaded file and an
// external link are both valid sources.
func ResolveMainVideo(p *model.Product) *MediaRef {
	for i := range p.Videos {
		if p.Videos[i].IsMain && p.Videos[i].URL() != "" {
			ref := videoRef(&p.Videos[i])
			return &ref
		}
	}
	for i := range p.Videos {
		if p.Videos[i].URL() != "" {
			ref := videoRef(&p.Videos[i])
			return &ref
		}
	}
	for i := range p.Medias {
		if p.Medias[i].HasVideo() {
			ref := legacyRef(&p.Medias[i])
			return &ref
		}
	}
	if p.VideoURL != "" {
		return &MediaRef{Kind: model.MediaTypeVideo, URL: p.VideoURL}
	}
	return nil
}

// ImageGallery lists the full image gallery: the current gallery when it has
// any entries, otherwise the legacy image entries, otherwise a single entry
// synthesized from the product's singular image field.
func ImageGallery(p *model.Product) []MediaRef {
	if len(p.Images) > 0 {
		refs := make([]MediaRef, 0, len(p.Images))
		for i := range p.Images {
			refs = append(refs, imageRef(&p.Images[i]))
		}
		return refs
	}

	var refs []MediaRef
	for i := range p.Medias {
		if p.Medias[i].Type == model.MediaTypeImage {
			refs = append(refs, legacyRef(&p.Medias[i]))
		}
	}
	if len(refs) > 0 {
		return refs
	}

	if p.ImageURL != "" {
		return []MediaRef{{Kind: model.MediaTypeImage, URL: p.ImageURL}}
	}
	return []MediaRef{}
}

// VideoGallery mirrors ImageGallery for video entries.
func VideoGallery(p *model.Product) []MediaRef {
	if len(p.Videos) > 0 {
		refs := make([]MediaRef, 0, len(p.Videos))
		for i := range p.Videos {
			refs = append(refs, videoRef(&p.Videos[i]))
		}
		return refs
	}

	var refs []MediaRef
	for i := range p.Medias {
		if p.Medias[i].Type == model.MediaTypeVideo {
			refs = append(refs, legacyRef(&p.Medias[i]))
		}
	}
	if len(refs) > 0 {
		return refs
	}

	if p.VideoURL != "" {
		return []MediaRef{{Kind: model.MediaTypeVideo, URL: p.VideoURL}}
	}
	return []MediaRef{}
}
