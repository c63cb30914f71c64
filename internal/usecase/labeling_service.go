package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecoyoung/packform/internal/domain"
	"github.com/ecoyoung/packform/internal/logger"
)

// evidenceSeparator joins match evidence into the match_evidence cell.
const evidenceSeparator = ", "

// LabelingConfig holds configuration for the labeling service
type LabelingConfig struct {
	Fields       domain.Fields
	ExampleLimit int
}

// LabelingService runs the two-pass labeling over a batch of records
type LabelingService struct {
	standardizer domain.Standardizer
	detector     domain.Detector
	recorder     domain.BatchRecorder
	log          logger.Logger
	fields       domain.Fields
	exampleLimit int
}

// NewLabelingService creates a labeling service. recorder and log may be nil.
func NewLabelingService(
	standardizer domain.Standardizer,
	detector domain.Detector,
	recorder domain.BatchRecorder,
	log logger.Logger,
	config LabelingConfig,
) *LabelingService {
	if log == nil {
		log = logger.NewNop()
	}

	fields := config.Fields
	if fields.Label == "" {
		fields.Label = "Pack form"
	}
	if fields.Text == "" {
		fields.Text = "Product"
	}

	exampleLimit := config.ExampleLimit
	if exampleLimit <= 0 {
		exampleLimit = 10
	}

	return &LabelingService{
		standardizer: standardizer,
		detector:     detector,
		recorder:     recorder,
		log:          log,
		fields:       fields,
		exampleLimit: exampleLimit,
	}
}

// Fields returns the default label and text column names.
func (s *LabelingService) Fields() domain.Fields {
	return s.fields
}

// Inference is the outcome of classifying one text.
type Inference struct {
	Detection  domain.Detection
	Category   domain.Category // empty when nothing was detected
	Confidence float64
}

// Matched reports whether any category signal was found.
func (i Inference) Matched() bool {
	return i.Category != ""
}

// Standardize maps a single raw label onto the canonical vocabulary.
func (s *LabelingService) Standardize(label string) domain.Label {
	return s.standardizer.Standardize(label)
}

// Infer detects and classifies a single text. A text without signals yields no category.
func (s *LabelingService) Infer(ctx context.Context, text string) Inference {
	det := s.detector.Detect(ctx, text)
	if det.Empty() {
		return Inference{Detection: det}
	}
	return Inference{
		Detection:  det,
		Category:   Classify(det.Categories),
		Confidence: Confidence(det.Categories),
	}
}

// Process labels records and returns the batch. The input slice is not modified.
//
// Pass 1 standardizes every non-blank label. Pass 2 infers a label from the text
// of every row that is still blank. originally_absent is fixed before either pass.
func (s *LabelingService) Process(ctx context.Context, records []domain.Record) *domain.Batch {
	start := time.Now()

	batch := &domain.Batch{
		ID:      uuid.NewString(),
		Records: make([]domain.Record, len(records)),
	}
	for i, r := range records {
		batch.Records[i] = domain.Record{
			Row:              r.Row,
			Label:            r.Label,
			Text:             r.Text,
			OriginallyAbsent: domain.IsBlank(r.Label),
		}
	}

	for i := range batch.Records {
		r := &batch.Records[i]
		if r.OriginallyAbsent {
			continue
		}
		standardized := s.standardizer.Standardize(r.Label).String()
		if standardized != r.Label {
			r.Label = standardized
			r.WasStandardized = true
			batch.StandardizedCount++
		}
	}

	for i := range batch.Records {
		r := &batch.Records[i]
		if !domain.IsBlank(r.Label) {
			continue
		}
		inf := s.Infer(ctx, r.Text)
		if !inf.Matched() {
			continue
		}
		r.Label = string(inf.Category)
		r.MatchedCategory = inf.Category
		r.MatchEvidence = strings.Join(inf.Detection.Evidence, evidenceSeparator)
		r.Confidence = inf.Confidence
		batch.FilledCount++
	}

	duration := time.Since(start)
	if s.recorder != nil {
		s.recorder.RecordBatch(batch, duration)
	}

	s.log.Info("batch labeled",
		logger.String("batch_id", batch.ID),
		logger.Int("rows", len(batch.Records)),
		logger.Int("standardized", batch.StandardizedCount),
		logger.Int("filled", batch.FilledCount),
		logger.Duration("duration", duration),
	)

	return batch
}

// LabelDataset labels a tabular dataset. Empty field names fall back to the configured ones.
// The output holds every input column, with the label column rewritten on standardized
// or filled rows, followed by the provenance columns.
func (s *LabelingService) LabelDataset(
	ctx context.Context,
	ds *domain.Dataset,
	fields domain.Fields,
) (*domain.Dataset, *domain.Batch, error) {
	if ds == nil || len(ds.Columns) == 0 {
		return nil, nil, domain.ErrEmptyDataset
	}

	if fields.Label == "" {
		fields.Label = s.fields.Label
	}
	if fields.Text == "" {
		fields.Text = s.fields.Text
	}

	labelCol := ds.ColumnIndex(fields.Label)
	textCol := ds.ColumnIndex(fields.Text)
	var missing []string
	if labelCol < 0 {
		missing = append(missing, fields.Label)
	}
	if textCol < 0 {
		missing = append(missing, fields.Text)
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrMissingColumns, strings.Join(missing, ", "))
	}

	records := make([]domain.Record, len(ds.Rows))
	for i := range ds.Rows {
		records[i] = domain.Record{
			Row:   i,
			Label: domain.TextCell(ds.Cell(i, labelCol)),
			Text:  domain.TextCell(ds.Cell(i, textCol)),
		}
	}

	batch := s.Process(ctx, records)
	return buildOutput(ds, labelCol, batch), batch, nil
}

// buildOutput copies ds and writes the batch results into it. A provenance column
// that already exists in the input is overwritten rather than duplicated.
func buildOutput(ds *domain.Dataset, labelCol int, batch *domain.Batch) *domain.Dataset {
	columns := append([]string(nil), ds.Columns...)
	appended := make([]int, len(domain.AppendedColumns))
	for i, name := range domain.AppendedColumns {
		idx := indexOf(columns, name)
		if idx < 0 {
			idx = len(columns)
			columns = append(columns, name)
		}
		appended[i] = idx
	}

	out := &domain.Dataset{Columns: columns, Rows: make([][]any, len(ds.Rows))}
	for i, src := range ds.Rows {
		row := make([]any, len(columns))
		copy(row, src)

		r := batch.Records[i]
		if r.WasStandardized || r.Filled() {
			row[labelCol] = r.Label
		}
		row[appended[0]] = string(r.MatchedCategory)
		row[appended[1]] = r.MatchEvidence
		row[appended[2]] = r.OriginallyAbsent
		row[appended[3]] = r.Confidence
		row[appended[4]] = r.WasStandardized

		out.Rows[i] = row
	}
	return out
}

func indexOf(items []string, name string) int {
	for i, item := range items {
		if item == name {
			return i
		}
	}
	return -1
}
