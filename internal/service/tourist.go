package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"TourWatch/config"
	"TourWatch/internal/model"
	"TourWatch/internal/model/dto"
	"TourWatch/internal/queue"
	"TourWatch/internal/repository"
	"TourWatch/internal/view"
	pkgerrors "TourWatch/pkg/errors"
	"TourWatch/pkg/logger"
	"TourWatch/pkg/snowflake"
	"TourWatch/utils"
)

type TouristService struct{}

var (
	touristService *TouristService
	touristSvcOnce sync.Once
)

func Tourist() *TouristService {
	touristSvcOnce.Do(func() {
		touristService = &TouristService{}
	})
	return touristService
}

// ParseTouristID 解析 API 传入的游客 ID
func ParseTouristID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.InvalidTouristID
	}
	return id, nil
}

// Create 登记游客：证件号加密落库，哈希查重
func (s *TouristService) Create(ctx context.Context, req dto.CreateTouristRequest) (*dto.TouristItem, error) {
	docHash := utils.HashDocument(req.Document)

	_, err := repository.Tourist().GetByDocumentHash(ctx, docHash)
	if err == nil {
		return nil, pkgerrors.DocumentAlreadyRegistered
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check document hash: %w", err)
	}

	docCipher, err := utils.EncryptSensitive(req.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt document: %w", err)
	}

	contactPhoneCipher, err := utils.EncryptSensitive(req.Contact.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt contact phone: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public id: %w", err)
	}

	tourist := &model.Tourist{
		PublicID:       publicID,
		Name:           req.Name,
		Nationality:    req.Nationality,
		DocumentType:   req.DocumentType,
		DocumentCipher: docCipher,
		DocumentHash:   &docHash,
		MedicalInfo:    req.MedicalInfo,
		EmergencyContact: model.EmergencyContact{
			DisplayName:       req.Contact.DisplayName,
			Relationship:      req.Contact.Relationship,
			PhoneCipherBase64: contactPhoneCipher,
			PhoneHash:         utils.HashDocument(req.Contact.Phone),
		},
		Status: model.TouristStatusActive,
	}

	if err := repository.Tourist().Create(ctx, tourist); err != nil {
		return nil, fmt.Errorf("failed to create tourist: %w", err)
	}

	queue.PublishChangeEvent(queue.TableTourists, queue.ChangeOpInsert, publicID)

	logger.Logger.Info("Tourist registered",
		zap.Int64("public_id", publicID),
		zap.String("document_type", req.DocumentType),
	)

	item := touristItem(tourist, req.Document)
	return &item, nil
}

// List 游客列表，内存过滤排序，证件号脱敏
func (s *TouristService) List(ctx context.Context, opts view.ListOptions) ([]dto.TouristItem, error) {
	tourists, err := repository.Tourist().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tourists: %w", err)
	}

	filtered, err := view.Apply(tourists, opts, func(t model.Tourist) view.Fields {
		return view.Fields{
			Status:     string(t.Status),
			Name:       t.Name,
			SearchText: []string{t.Name, t.Nationality, strconv.FormatInt(t.PublicID, 10)},
			CreatedAt:  t.CreatedAt,
		}
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.TouristItem, 0, len(filtered))
	for i := range filtered {
		items = append(items, touristItem(&filtered[i], ""))
	}
	return items, nil
}

// Get 游客详情，附带最新位置和关联记录数量
func (s *TouristService) Get(ctx context.Context, publicID int64) (*dto.TouristDetail, error) {
	tourist, err := repository.Tourist().GetByPublicID(ctx, publicID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.TouristNotFound
		}
		return nil, fmt.Errorf("failed to query tourist: %w", err)
	}

	detail := &dto.TouristDetail{
		TouristItem: touristItem(tourist, ""),
		MedicalInfo: tourist.MedicalInfo,
		EmergencyContact: dto.EmergencyContactItem{
			DisplayName:  tourist.EmergencyContact.DisplayName,
			Relationship: tourist.EmergencyContact.Relationship,
			PhoneMasked:  maskContactPhone(tourist.EmergencyContact.PhoneCipherBase64),
		},
	}

	latest, err := repository.Location().LatestByTourist(ctx, publicID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to query latest location: %w", err)
	}
	if latest != nil {
		staleAfter := time.Duration(config.Cfg.StaleThresholdHours) * time.Hour
		detail.LatestPosition = &dto.LatestPositionItem{
			TouristID:        strconv.FormatInt(publicID, 10),
			TouristName:      tourist.Name,
			Latitude:         latest.Latitude,
			Longitude:        latest.Longitude,
			Address:          latest.Address,
			InRestrictedZone: latest.InRestrictedZone,
			RecordedAt:       latest.RecordedAt,
			Classification:   string(view.Classify(*latest, time.Now(), staleAfter)),
		}
	}

	incidents, err := repository.Incident().CountByTourist(ctx, publicID)
	if err != nil {
		return nil, fmt.Errorf("failed to count incidents: %w", err)
	}
	sosAlerts, err := repository.Sos().CountByTourist(ctx, publicID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sos alerts: %w", err)
	}
	efirs, err := repository.EFir().CountByTourist(ctx, publicID)
	if err != nil {
		return nil, fmt.Errorf("failed to count efirs: %w", err)
	}

	detail.Counts = dto.TouristRelationCounts{
		Incidents: incidents,
		SosAlerts: sosAlerts,
		EFirs:     efirs,
	}

	return detail, nil
}

// UpdateStatus 更新游客状态
func (s *TouristService) UpdateStatus(ctx context.Context, publicID int64, status string) error {
	normalized := model.TouristStatus(strings.ToLower(status))
	if normalized != model.TouristStatusActive && normalized != model.TouristStatusDeparted {
		return pkgerrors.Definition{Code: "INVALID_REQUEST", Message: "Invalid tourist status"}
	}

	_, err := repository.Tourist().GetByPublicID(ctx, publicID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.TouristNotFound
		}
		return fmt.Errorf("failed to query tourist: %w", err)
	}

	if err := repository.Tourist().UpdateStatus(ctx, publicID, normalized); err != nil {
		return fmt.Errorf("failed to update tourist status: %w", err)
	}

	queue.PublishChangeEvent(queue.TableTourists, queue.ChangeOpUpdate, publicID)
	return nil
}

// touristItem 列表项，plainDocument 只在刚创建时可用，其余场景解密后脱敏
func touristItem(t *model.Tourist, plainDocument string) dto.TouristItem {
	masked := ""
	if plainDocument != "" {
		masked = utils.MaskDocument(plainDocument)
	} else if doc, err := utils.DecryptSensitive(t.DocumentCipher); err == nil {
		masked = utils.MaskDocument(doc)
	}

	return dto.TouristItem{
		ID:             strconv.FormatInt(t.PublicID, 10),
		Name:           t.Name,
		Nationality:    t.Nationality,
		DocumentType:   t.DocumentType,
		DocumentMasked: masked,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
	}
}

func maskContactPhone(cipherBase64 string) string {
	if cipherBase64 == "" {
		return ""
	}
	phone, err := utils.DecryptSensitive(cipherBase64)
	if err != nil {
		return ""
	}
	return utils.MaskPhone(phone)
}
