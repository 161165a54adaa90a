package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadSession holds the most recent file uploaded within a browser session.
type UploadSession struct {
	ID         uuid.UUID
	FileName   string
	Content    []byte
	UploadedAt time.Time
}

// Report is the rendered outcome of one pipeline run.
type Report struct {
	FileName      string
	MergeStrategy MergeStrategy
	Table         *Table
}

func (r *Report) RowCount() int {
	return r.Table.Rows()
}
