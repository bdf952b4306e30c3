// Package esign documentos para firma electrónica: carga con huella, firma, anulación y descarga.
package esign

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Obrix-api/internal/application/dto"
	"github.com/jhoicas/Obrix-api/internal/application/ports"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
	"github.com/jhoicas/Obrix-api/internal/domain/signature"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// MaxDocumentSize tamaño máximo de un documento para firma (10 MiB).
const MaxDocumentSize = 10 << 20

// ErrDocumentTampered el contenido almacenado ya no coincide con la huella registrada al subirlo.
var ErrDocumentTampered = errors.New("esign: el documento cambió desde que se subió")

var allowedDocumentTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// LimitChecker verifica los límites del plan (usecase.EntitlementService lo implementa).
type LimitChecker interface {
	CheckLimit(ctx context.Context, companyID, limit string, current int) error
}

// TxRunner ejecuta fn con el repo de documentos dentro de una transacción.
type TxRunner interface {
	RunDocuments(ctx context.Context, fn func(documentRepo repository.DocumentRepository) error) error
}

// UseCase documentos para firma electrónica.
type UseCase struct {
	repo      repository.DocumentRepository
	tx        TxRunner
	storage   ports.ObjectStorage
	limits    LimitChecker
	sanitizer ports.Sanitizer
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.DocumentRepository,
	tx TxRunner,
	storage ports.ObjectStorage,
	limits LimitChecker,
	sanitizer ports.Sanitizer,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		repo:      repo,
		tx:        tx,
		storage:   storage,
		limits:    limits,
		sanitizer: sanitizer,
		log:       log.Component("esign"),
		now:       time.Now,
	}
}

// Upload guarda el archivo (PDF, PNG o JPEG) y registra su huella. Respeta max_documents del plan.
func (uc *UseCase) Upload(ctx context.Context, companyID, userID, title string, data []byte) (*dto.DocumentResponse, error) {
	title = uc.sanitizer.Text(title)
	if title == "" || len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: el documento supera %d bytes", domain.ErrInvalidInput, MaxDocumentSize)
	}
	count, err := uc.repo.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := uc.limits.CheckLimit(ctx, companyID, entity.LimitMaxDocuments, count); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	key := fmt.Sprintf("%s/documents/%s", companyID, id)
	contentType, err := uc.storage.Put(ctx, key, data)
	if err != nil {
		return nil, fmt.Errorf("esign: guardar archivo: %w", err)
	}
	if !allowedDocumentTypes[baseContentType(contentType)] {
		if err := uc.storage.Delete(ctx, key); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo borrar archivo rechazado")
		}
		return nil, fmt.Errorf("%w: tipo de archivo no soportado (%s)", domain.ErrInvalidInput, contentType)
	}

	now := uc.now()
	doc := &entity.Document{
		ID:          id,
		CompanyID:   companyID,
		Title:       title,
		StorageKey:  key,
		ContentType: baseContentType(contentType),
		Size:        int64(len(data)),
		Fingerprint: signature.Fingerprint(data),
		Status:      entity.DocumentStatusPending,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		_ = uc.storage.Delete(ctx, key)
		return nil, err
	}
	return toDocumentResponse(doc, nil), nil
}

// Sign captura una firma sobre un documento pendiente. Antes de firmar verifica que el
// contenido almacenado conserva la huella original.
func (uc *UseCase) Sign(ctx context.Context, companyID, id, ip string, in dto.SignDocumentRequest) (*dto.DocumentResponse, error) {
	name := uc.sanitizer.Text(in.SignerName)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	image, err := decodeSignatureImage(in.Image)
	if err != nil {
		return nil, err
	}
	doc, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != entity.DocumentStatusPending {
		return nil, fmt.Errorf("%w: el documento está %s", domain.ErrConflict, doc.Status)
	}

	current, err := uc.currentFingerprint(ctx, doc)
	if err != nil {
		return nil, err
	}
	if !signature.Matches(doc.Fingerprint, current) {
		uc.log.Error().Str("document_id", doc.ID).Msg("huella del documento no coincide")
		return nil, fmt.Errorf("%w: %v", domain.ErrConflict, ErrDocumentTampered)
	}

	sig := &entity.Signature{
		ID:          uuid.New().String(),
		DocumentID:  doc.ID,
		SignerName:  name,
		SignerEmail: strings.TrimSpace(in.SignerEmail),
		Image:       base64.StdEncoding.EncodeToString(image),
		IPAddress:   ip,
		Fingerprint: current,
		SignedAt:    uc.now(),
	}
	err = uc.tx.RunDocuments(ctx, func(repo repository.DocumentRepository) error {
		ok, err := repo.TransitionStatus(ctx, doc.ID, entity.DocumentStatusPending, entity.DocumentStatusSigned)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: el documento ya no está pendiente", domain.ErrConflict)
		}
		return repo.AddSignature(ctx, sig)
	})
	if err != nil {
		return nil, err
	}
	doc.Status = entity.DocumentStatusSigned
	uc.log.Info().Str("document_id", doc.ID).Str("signer", name).Msg("documento firmado")
	return toDocumentResponse(doc, []*entity.Signature{sig}), nil
}

// Void anula un documento pendiente.
func (uc *UseCase) Void(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != entity.DocumentStatusPending {
		return nil, fmt.Errorf("%w: el documento está %s", domain.ErrConflict, doc.Status)
	}
	ok, err := uc.repo.TransitionStatus(ctx, doc.ID, entity.DocumentStatusPending, entity.DocumentStatusVoid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: el documento ya no está pendiente", domain.ErrConflict)
	}
	doc.Status = entity.DocumentStatusVoid
	return toDocumentResponse(doc, nil), nil
}

// Get documento con sus firmas.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	sigs, err := uc.repo.ListSignatures(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, sigs), nil
}

// List documentos de la empresa.
func (uc *UseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.DocumentResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(list))
	for _, doc := range list {
		out = append(out, *toDocumentResponse(doc, nil))
	}
	return out, nil
}

// Download devuelve el contenido del documento; el caller cierra el lector.
func (uc *UseCase) Download(ctx context.Context, companyID, id string) (io.ReadCloser, *entity.Document, error) {
	doc, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := uc.storage.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return rc, doc, nil
}

// Delete elimina un documento no firmado y su archivo.
func (uc *UseCase) Delete(ctx context.Context, companyID, id string) error {
	doc, err := uc.owned(ctx, companyID, id)
	if err != nil {
		return err
	}
	if doc.Status == entity.DocumentStatusSigned {
		return fmt.Errorf("%w: un documento firmado no se elimina", domain.ErrConflict)
	}
	if err := uc.repo.Delete(ctx, doc.ID); err != nil {
		return err
	}
	if err := uc.storage.Delete(ctx, doc.StorageKey); err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.log.Warn().Err(err).Str("key", doc.StorageKey).Msg("no se pudo borrar el archivo del documento")
	}
	return nil
}

func (uc *UseCase) currentFingerprint(ctx context.Context, doc *entity.Document) (string, error) {
	rc, err := uc.storage.Get(ctx, doc.StorageKey)
	if err != nil {
		return "", fmt.Errorf("esign: leer archivo: %w", err)
	}
	defer rc.Close()
	return signature.FingerprintReader(rc)
}

func (uc *UseCase) owned(ctx context.Context, companyID, id string) (*entity.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

// decodeSignatureImage acepta base64 puro o data URL y exige un PNG.
func decodeSignatureImage(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ","); strings.HasPrefix(s, "data:") && i > 0 {
		s = s[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: imagen de firma no es base64", domain.ErrInvalidInput)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		return nil, fmt.Errorf("%w: la firma debe ser PNG", domain.ErrInvalidInput)
	}
	return data, nil
}

func baseContentType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

func toDocumentResponse(doc *entity.Document, sigs []*entity.Signature) *dto.DocumentResponse {
	res := &dto.DocumentResponse{
		ID:          doc.ID,
		Title:       doc.Title,
		ContentType: doc.ContentType,
		Size:        doc.Size,
		Fingerprint: doc.Fingerprint,
		Status:      doc.Status,
		CreatedBy:   doc.CreatedBy,
		CreatedAt:   doc.CreatedAt,
	}
	for _, s := range sigs {
		res.Signatures = append(res.Signatures, dto.SignatureResponse{
			ID:          s.ID,
			SignerName:  s.SignerName,
			SignerEmail: s.SignerEmail,
			IPAddress:   s.IPAddress,
			Fingerprint: s.Fingerprint,
			SignedAt:    s.SignedAt,
		})
	}
	return res
}
