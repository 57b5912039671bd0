package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"travelbook/internal/apperror"
	"travelbook/internal/service"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return nil
}

// validate runs the struct tags and reports the failing fields by their JSON names.
func (h *Handlers) validate(req any) error {
	err := h.Validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Validation("Invalid request")
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[jsonName(fe.Field())] = fe.Tag()
	}

	return apperror.Validation("Invalid or missing fields").WithDetails(map[string]any{"fields": fields})
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// parseForm reads a multipart or url-encoded body limited to the configured upload size.
func (h *Handlers) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.Upload.MaxUploadSize)

	err := r.ParseMultipartForm(h.Cfg.Upload.MaxUploadSize)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperror.Validation(fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit))
		}
		return apperror.Validation("Invalid form data")
	}

	return nil
}

// formField returns the field's value, or nil when the form does not carry it.
func formField(r *http.Request, name string) *string {
	if r.MultipartForm != nil {
		if values, ok := r.MultipartForm.Value[name]; ok && len(values) > 0 {
			return &values[0]
		}
	}
	if values, ok := r.PostForm[name]; ok && len(values) > 0 {
		return &values[0]
	}
	return nil
}

func formValue(r *http.Request, name string) string {
	if v := formField(r, name); v != nil {
		return *v
	}
	return ""
}

// formFiles opens the files uploaded under field. The returned func closes them.
func formFiles(r *http.Request, field string) ([]service.Upload, func(), error) {
	var (
		uploads []service.Upload
		opened  []multipart.File
	)
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	if r.MultipartForm == nil {
		return nil, closeAll, nil
	}

	for _, header := range r.MultipartForm.File[field] {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperror.Validation("Unable to read uploaded file")
		}
		opened = append(opened, file)

		uploads = append(uploads, service.Upload{
			FileName:    header.Filename,
			ContentType: contentType(header),
			Size:        header.Size,
			Reader:      file,
		})
	}

	return uploads, closeAll, nil
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
			return mediaType
		}
	}

	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(header.Filename))); ct != "" {
		mediaType, _, _ := mime.ParseMediaType(ct)
		return mediaType
	}

	return "application/octet-stream"
}
