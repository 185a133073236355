// Package uploads reads multipart files and enforces content-type and size
// policies before anything is written to storage.
package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	_ "golang.org/x/image/webp"

	"github.com/testersconnect/site/pkg/validation"
)

const (
	TypePDF  = "application/pdf"
	TypePNG  = "image/png"
	TypeJPEG = "image/jpeg"
	TypeWEBP = "image/webp"
)

// File is an uploaded file held in memory.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Read loads a form file. The declared content type wins unless it is
// missing or generic, in which case the bytes are sniffed.
func Read(fh *multipart.FileHeader) (*File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return &File{
		Name:        fh.Filename,
		ContentType: DetectContentType(fh.Header.Get("Content-Type"), data),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

// ParseForm parses a multipart request body capped at limit bytes. A body
// over the cap reports sizeMessage as a validation error. Any other parse
// failure returns malformed.
func ParseForm(w http.ResponseWriter, r *http.Request, limit int64, sizeMessage string, malformed error) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	err := r.ParseMultipartForm(limit)
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return validation.New(sizeMessage)
	}
	return malformed
}

// FormFile returns the named file from a parsed multipart form, or nil when
// the field is absent or the file is empty.
func FormFile(r *http.Request, field string) (*File, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, nil
	}
	fh := r.MultipartForm.File[field][0]
	if fh.Size == 0 {
		return nil, nil
	}
	return Read(fh)
}

func DetectContentType(declared string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "" && mt != "application/octet-stream" {
		return mt
	}
	mt, _, _ := mime.ParseMediaType(mimetype.Detect(data).String())
	return mt
}

// Policy constrains one kind of upload.
type Policy struct {
	Types       []string
	MaxBytes    int64
	TypeMessage string
	SizeMessage string
}

// Check rejects f when its type is not allowed or it exceeds MaxBytes.
func (p Policy) Check(f *File) error {
	if !slices.Contains(p.Types, f.ContentType) {
		return validation.New(p.TypeMessage)
	}
	if f.Size > p.MaxBytes {
		return validation.New(p.SizeMessage)
	}
	return nil
}

// CoverPolicy accepts PNG, JPEG and WEBP images up to the configured cover size.
func CoverPolicy(cfg *Config) Policy {
	return Policy{
		Types:       []string{TypePNG, TypeJPEG, TypeWEBP},
		MaxBytes:    cfg.CoverMaxBytes(),
		TypeMessage: "Cover must be PNG, JPG, or WEBP",
		SizeMessage: fmt.Sprintf("Cover image must be under %s", cfg.CoverMaxSize),
	}
}

// PDFPolicy accepts PDF documents up to the configured PDF size.
func PDFPolicy(cfg *Config) Policy {
	return Policy{
		Types:       []string{TypePDF},
		MaxBytes:    cfg.PDFMaxBytes(),
		TypeMessage: "Only PDF files are allowed",
		SizeMessage: fmt.Sprintf("PDF must be under %s", cfg.PDFMaxSize),
	}
}

// Extension maps an allowed image type to its file extension.
func Extension(contentType string) string {
	switch contentType {
	case TypePNG:
		return "png"
	case TypeWEBP:
		return "webp"
	case TypePDF:
		return "pdf"
	default:
		return "jpg"
	}
}

// PageCount returns the number of pages in a PDF. Malformed documents
// yield an error, including ones that make the parser panic.
func PageCount(data []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("parse pdf: %v", r)
		}
	}()
	return api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
}

// ImageSize decodes only the image header and returns its dimensions.
func ImageSize(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
