package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/soict-hust/gradadmit-api/internal/dto"
	"github.com/soict-hust/gradadmit-api/internal/gateway"
	"github.com/soict-hust/gradadmit-api/internal/models"
	"github.com/soict-hust/gradadmit-api/internal/review"
	"github.com/soict-hust/gradadmit-api/pkg/config"
	appErrors "github.com/soict-hust/gradadmit-api/pkg/errors"
)

type fileUploader interface {
	UploadFile(ctx context.Context, req gateway.UploadFileRequest) (string, error)
}

// documentSlot ties an upload slot to its link column and the stored
// file name prefix.
type documentSlot struct {
	LinkColumn string
	NamePrefix string
}

var documentSlots = map[string]documentSlot{
	"photo":         {LinkColumn: review.FieldLinkPhoto, NamePrefix: "AnhThe"},
	"degree":        {LinkColumn: review.FieldLinkDegree, NamePrefix: "BangTotNghiep"},
	"transcript":    {LinkColumn: review.FieldLinkTranscript, NamePrefix: "BangDiem"},
	"language_cert": {LinkColumn: review.FieldLinkLanguageCert, NamePrefix: "ChungChiNN"},
	"priority":      {LinkColumn: review.FieldLinkPriority, NamePrefix: "MinhChungUuTien"},
	"research":      {LinkColumn: review.FieldLinkResearch, NamePrefix: "MinhChungNCKH"},
}

var mimeExtensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"application/pdf": "pdf",
}

// UploadService checks and forwards supporting documents to the
// gateway, which stores the file and writes its URL into the slot's
// link column.
type UploadService struct {
	gateway fileUploader
	audit   auditRecorder
	cfg     config.UploadsConfig
	logger  *zap.Logger
}

// NewUploadService constructs an UploadService.
func NewUploadService(gw fileUploader, audit auditRecorder, cfg config.UploadsConfig, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{gateway: gw, audit: audit, cfg: cfg, logger: logger}
}

// Upload validates one document and forwards it. The stored file is
// named after the slot and account so re-uploads replace the previous
// file instead of piling up.
func (s *UploadService) Upload(ctx context.Context, userID, email, fullName string, req dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	slot, ok := documentSlots[req.Slot]
	if !ok {
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "unknown document slot"),
			map[string]string{"slot": req.Slot},
		)
	}

	mime := strings.ToLower(strings.TrimSpace(req.MimeType))
	if !s.mimeAllowed(mime) {
		return nil, appErrors.Clone(appErrors.ErrFileType, fmt.Sprintf("file type %s is not accepted", mime))
	}

	raw, err := decodeFileData(req.FileData)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "file data is not valid base64")
	}
	if int64(len(raw)) > s.cfg.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d MB limit", s.cfg.MaxFileSizeBytes/(1024*1024)))
	}

	ext := mimeExtensions[mime]
	if ext == "" {
		ext = "bin"
	}
	fileName := fmt.Sprintf("%s_%s.%s", slot.NamePrefix, userID, ext)

	fileURL, err := s.gateway.UploadFile(ctx, gateway.UploadFileRequest{
		Email:            email,
		FileName:         fileName,
		MimeType:         mime,
		FileData:         base64.StdEncoding.EncodeToString(raw),
		ApplicantID:      userID,
		ApplicantName:    fullName,
		LinkColumnHeader: slot.LinkColumn,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to store document")
	}

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionDocumentUpload,
		Resource:   "document",
		ResourceID: &userID,
		NewValues:  []byte(fmt.Sprintf(`{"slot":%q}`, req.Slot)),
	}); err != nil {
		s.logger.Warn("failed to record upload audit log", zap.Error(err))
	}

	s.logger.Info("document uploaded",
		zap.String("slot", req.Slot),
		zap.String("file", fileName),
		zap.Int("bytes", len(raw)),
	)
	return &dto.UploadDocumentResponse{FileURL: fileURL}, nil
}

func (s *UploadService) mimeAllowed(mime string) bool {
	for _, allowed := range s.cfg.AllowedMIMEs {
		if strings.EqualFold(allowed, mime) {
			return true
		}
	}
	return false
}

// decodeFileData accepts raw base64 or a data URL and returns the
// decoded bytes.
func decodeFileData(data string) ([]byte, error) {
	if idx := strings.Index(data, ";base64,"); idx >= 0 {
		data = data[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(data)
}
