package models

// PredictionFilter represents filter parameters for querying prediction history
type PredictionFilter struct {
	Prediction *int  `form:"prediction" binding:"omitempty,oneof=0 1"`        // 0 or 1
	StartTime  int64 `form:"startTime"`                                       // Unix timestamp
	EndTime    int64 `form:"endTime" binding:"omitempty,gtefield=StartTime"` // Unix timestamp, not before StartTime
	Page       int   `form:"page"`
	PageSize   int   `form:"pageSize"`
}

// Normalize clamps pagination to sane bounds
func (f *PredictionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 100
	}
	if f.PageSize > 1000 {
		f.PageSize = 1000
	}
}

// PredictionsResponse represents a paginated response of predictions
type PredictionsResponse struct {
	Data       []Prediction `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}
