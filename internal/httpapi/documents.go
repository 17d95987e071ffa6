package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lllllllleong/pdfvault/internal/models"
	"github.com/Lllllllleong/pdfvault/internal/vault"
)

// maxUploadBytes caps the multipart form, PDF included.
const maxUploadBytes = 64 << 20

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "expected a multipart form with a PDF file")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	filename := r.FormValue("filename")
	if filename == "" {
		filename = header.Filename
	}

	var blurRadius float64
	if raw := r.FormValue("blur_radius"); raw != "" {
		blurRadius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "blur_radius must be a number")
			return
		}
	}

	in := vault.CreateInput{
		ID:            r.FormValue("document_id"),
		Filename:      filename,
		Data:          data,
		OwnerPassword: r.FormValue("owner_password"),
		UserPassword:  r.FormValue("user_password"),
		BlurRadius:    blurRadius,
	}

	out, err := s.manager.Create(r.Context(), in)
	if err != nil {
		writeVaultError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.CreateDocumentResponse{
		DocumentID: in.ID,
		Pages:      out.PageCount,
		Redactions: out.Redactions,
	})
}

func (s *Server) handleAccessDocument(w http.ResponseWriter, r *http.Request) {
	var req models.AccessDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "expected a JSON body with a password field")
		return
	}

	out, err := s.manager.Access(r.Context(), chi.URLParam(r, "id"), req.Password)
	if err != nil {
		writeVaultError(w, err)
		return
	}

	note := "You have access to the protected version with sensitive data masked."
	if out.Role == models.RoleOwner {
		note = "You have full access to the original document."
	}
	writeJSON(w, http.StatusOK, models.AccessDocumentResponse{
		Filename: out.Filename,
		URL:      out.Location,
		Role:     out.Role,
		Note:     note,
	})
}

// writeVaultError maps the vault error taxonomy onto HTTP statuses.
func writeVaultError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vault.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, vault.ErrDuplicateID):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, vault.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, vault.ErrInvalidCredential):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, vault.ErrPipeline):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, vault.ErrStorage):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
