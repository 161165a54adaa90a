package dto

import (
	"math"
	"time"

	"permeability-service/internal/adapters/primary/http/view"
	"permeability-service/internal/core/domain"
)

type ColumnResponse struct {
	Name    string `json:"name"`
	Numeric bool   `json:"numeric"`
}

// PredictionResponse is the JSON rendering of a report. Numeric cells are
// numbers (null when missing), text cells are strings.
type PredictionResponse struct {
	FileName      string           `json:"file_name"`
	RowCount      int              `json:"row_count"`
	MergeStrategy string           `json:"merge_strategy"`
	IndexName     string           `json:"index_name"`
	Index         []interface{}    `json:"index"`
	Columns       []ColumnResponse `json:"columns"`
	Rows          [][]interface{}  `json:"rows"`
	Chart         view.Figure      `json:"chart"`
}

type UploadSessionResponse struct {
	SessionID  string    `json:"session_id"`
	FileName   string    `json:"file_name"`
	SizeBytes  int       `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func ToPredictionResponse(r *domain.Report, chart view.ChartStyle) PredictionResponse {
	t := r.Table
	resp := PredictionResponse{
		FileName:      r.FileName,
		RowCount:      r.RowCount(),
		MergeStrategy: string(r.MergeStrategy),
		IndexName:     t.IndexName(),
		Index:         make([]interface{}, t.Rows()),
		Columns:       make([]ColumnResponse, 0, len(t.Columns)),
		Rows:          make([][]interface{}, t.Rows()),
		Chart:         view.BuildFigure(t, chart),
	}

	for _, c := range t.Columns {
		resp.Columns = append(resp.Columns, ColumnResponse{Name: c.Name, Numeric: c.Numeric})
	}
	for i := 0; i < t.Rows(); i++ {
		resp.Index[i] = cell(t.Index, i)
		row := make([]interface{}, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = cell(c, i)
		}
		resp.Rows[i] = row
	}
	return resp
}

func ToUploadSessionResponse(s *domain.UploadSession) UploadSessionResponse {
	return UploadSessionResponse{
		SessionID:  s.ID.String(),
		FileName:   s.FileName,
		SizeBytes:  len(s.Content),
		UploadedAt: s.UploadedAt,
	}
}

func cell(c *domain.Column, i int) interface{} {
	if !c.Numeric {
		return c.Raw[i]
	}
	v := c.Values[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
