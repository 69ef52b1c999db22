package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"ai-medassist-be/internal/constant"
	"ai-medassist-be/internal/dto"
	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/pkg/logger"
	"ai-medassist-be/internal/pkg/serverutils"
	"ai-medassist-be/internal/repository/specification"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/pkg/extract"
	"ai-medassist-be/pkg/parse"
)

type IPrescriptionService interface {
	Upload(ctx context.Context, userId uuid.UUID, doc entity.RawDocument) (*dto.UploadPrescriptionResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowPrescriptionResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ListPrescriptionsResponse, error)
}

type prescriptionService struct {
	uowFactory       unitofwork.RepositoryFactory
	extractEngine    *extract.Engine
	publisherService IPublisherService
	log              logger.ILogger
}

func NewPrescriptionService(
	uowFactory unitofwork.RepositoryFactory,
	extractEngine *extract.Engine,
	publisherService IPublisherService,
	log logger.ILogger,
) IPrescriptionService {
	return &prescriptionService{
		uowFactory:       uowFactory,
		extractEngine:    extractEngine,
		publisherService: publisherService,
		log:              log,
	}
}

// publishProgress is fire-and-forget: a lost progress event must never fail
// the upload itself.
func (s *prescriptionService) publishProgress(ctx context.Context, userId uuid.UUID, stage string, percent int, detail string) {
	payload, err := json.Marshal(dto.OcrProgressMessage{
		UserId:  userId,
		Stage:   stage,
		Percent: percent,
		Detail:  detail,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("PrescriptionService", "Failed to publish progress event", map[string]interface{}{
			"user_id": userId,
			"stage":   stage,
			"error":   err.Error(),
		})
	}
}

func (s *prescriptionService) Upload(ctx context.Context, userId uuid.UUID, doc entity.RawDocument) (*dto.UploadPrescriptionResponse, error) {
	s.publishProgress(ctx, userId, constant.ProgressStageReceived, 0, "")
	s.publishProgress(ctx, userId, constant.ProgressStagePrimary, 10, "")

	extracted, err := s.extractEngine.Extract(ctx, doc, func(percent int) {
		// OCR progress only runs on the fallback path; rescale its 0-100
		// into the 20-70 band of the overall pipeline.
		s.publishProgress(ctx, userId, constant.ProgressStageFallback, 20+percent/2, "")
	})
	if err != nil {
		s.publishProgress(ctx, userId, constant.ProgressStageFailed, 100, err.Error())
		return nil, err
	}

	s.publishProgress(ctx, userId, constant.ProgressStageParsing, 75, "")
	medications := parse.Parse(extracted.Text)

	prescription := entity.Prescription{
		Id:          uuid.New(),
		UserId:      userId,
		RawText:     extracted.Text,
		Source:      extracted.Source,
		Confidence:  extracted.Confidence,
		Medications: medications,
		CreatedAt:   time.Now(),
	}

	s.publishProgress(ctx, userId, constant.ProgressStagePersisting, 90, "")
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PrescriptionRepository().Create(ctx, &prescription); err != nil {
		s.publishProgress(ctx, userId, constant.ProgressStageFailed, 100, "storage failure")
		return nil, err
	}

	s.publishProgress(ctx, userId, constant.ProgressStageDone, 100, "")
	s.log.Info("PrescriptionService", "Prescription processed", map[string]interface{}{
		"prescription_id": prescription.Id,
		"user_id":         userId,
		"source":          extracted.Source,
		"medications":     len(medications),
	})

	return &dto.UploadPrescriptionResponse{
		Id:          prescription.Id,
		RawText:     prescription.RawText,
		Source:      string(prescription.Source),
		Confidence:  prescription.Confidence,
		Medications: dto.ToMedicationItems(medications),
	}, nil
}

func (s *prescriptionService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowPrescriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	prescription, err := uow.PrescriptionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, serverutils.NotFound("prescription not found")
	}

	return &dto.ShowPrescriptionResponse{
		Id:          prescription.Id,
		RawText:     prescription.RawText,
		Source:      string(prescription.Source),
		Confidence:  prescription.Confidence,
		Medications: dto.ToMedicationItems(prescription.Medications),
		CreatedAt:   prescription.CreatedAt,
	}, nil
}

func (s *prescriptionService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ListPrescriptionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	prescriptions, err := uow.PrescriptionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ListPrescriptionsResponse, len(prescriptions))
	for i, p := range prescriptions {
		res[i] = &dto.ListPrescriptionsResponse{
			Id:              p.Id,
			MedicationCount: len(p.Medications),
			Source:          string(p.Source),
			CreatedAt:       p.CreatedAt,
		}
	}
	return res, nil
}
