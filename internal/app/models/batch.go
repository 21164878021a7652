package models

// Batch represents a student group.
type Batch struct {
	ID        int64  `json:"id" db:"id"`
	BatchID   string `json:"batchId" db:"batch_id"`
	Programme string `json:"programme" db:"programme"`
	Size      int    `json:"size" db:"size"`
	Year      string `json:"year,omitempty" db:"year"`
}
