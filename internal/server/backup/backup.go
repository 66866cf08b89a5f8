// Package backup periodically archives every save record to an
// S3-compatible bucket (AWS S3 or MinIO).
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/google/uuid"
)

// Config selects the bucket and how to reach it. An empty Endpoint means
// AWS itself; otherwise path-style addressing is used, as MinIO expects.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// SaveLister yields the records to archive.
type SaveLister interface {
	List(ctx context.Context) ([]*models.SaveRecord, error)
}

// ObjectPutter is the part of *s3.Client the exporter uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type Exporter struct {
	bucket string
	saves  SaveLister
	client ObjectPutter
	log    logging.Logger
	now    func() time.Time
	newID  func() string
}

// NewExporter builds the S3 client from cfg. No request is made until the
// first export.
func NewExporter(ctx context.Context, cfg Config, saves SaveLister, log logging.Logger) (*Exporter, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("backup bucket is not configured")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Exporter{
		bucket: cfg.Bucket,
		saves:  saves,
		client: client,
		log:    log.With("module", "backup"),
		now:    time.Now,
		newID:  uuid.NewString,
	}, nil
}

type archive struct {
	ExportedAt time.Time       `json:"exported_at"`
	Count      int             `json:"count"`
	Records    []archiveRecord `json:"records"`
}

type archiveRecord struct {
	AccountID           string          `json:"account_id"`
	Name                string          `json:"name"`
	Class               string          `json:"class"`
	Level               int64           `json:"level"`
	Experience          int64           `json:"experience"`
	Health              int64           `json:"health"`
	MaxHealth           int64           `json:"max_health"`
	Sanity              int64           `json:"sanity"`
	MaxSanity           int64           `json:"max_sanity"`
	Gold                int64           `json:"gold"`
	BankGold            int64           `json:"bank_gold"`
	Turns               int64           `json:"turns"`
	DeliveryRank        int64           `json:"delivery_rank"`
	DeliveryStreak      int64           `json:"delivery_streak"`
	DeliveriesCompleted int64           `json:"deliveries_completed"`
	Inventory           json.RawMessage `json:"inventory"`
	Weapon              json.RawMessage `json:"weapon"`
	Armor               json.RawMessage `json:"armor"`
	CurrentPackage      json.RawMessage `json:"current_package"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func toArchiveRecord(r *models.SaveRecord) archiveRecord {
	return archiveRecord{
		AccountID:           r.AccountID,
		Name:                r.CharacterName,
		Class:               r.CharacterClass,
		Level:               r.Level,
		Experience:          r.Experience,
		Health:              r.Health,
		MaxHealth:           r.MaxHealth,
		Sanity:              r.Sanity,
		MaxSanity:           r.MaxSanity,
		Gold:                r.Gold,
		BankGold:            r.BankGold,
		Turns:               r.Turns,
		DeliveryRank:        r.DeliveryRank,
		DeliveryStreak:      r.DeliveryStreak,
		DeliveriesCompleted: r.DeliveriesCompleted,
		Inventory:           r.Inventory,
		Weapon:              r.Weapon,
		Armor:               r.Armor,
		CurrentPackage:      r.CurrentPackage,
		UpdatedAt:           r.UpdatedAt,
	}
}

// Export uploads one archive of all records and returns its object key,
// saves/YYYY/MM/DD/<uuid>.json.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	recs, err := e.saves.List(ctx)
	if err != nil {
		return "", err
	}

	now := e.now().UTC()
	doc := archive{ExportedAt: now, Count: len(recs), Records: make([]archiveRecord, 0, len(recs))}
	for _, r := range recs {
		doc.Records = append(doc.Records, toArchiveRecord(r))
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode archive: %w", err)
	}

	key := fmt.Sprintf("saves/%s/%s.json", now.Format("2006/01/02"), e.newID())

	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	e.log.Info(ctx, "saves archived", "key", key, "records", len(recs))
	return key, nil
}

// Run exports every interval until ctx is done. Failures are logged and the
// loop carries on.
func (e *Exporter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.Export(ctx); err != nil && ctx.Err() == nil {
				e.log.Error(ctx, "save archive failed", "error", err)
			}
		}
	}
}
