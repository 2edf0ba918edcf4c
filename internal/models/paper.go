package models

// PaperCategory distinguishes past examination papers from model papers.
type PaperCategory string

const (
	CategoryPastPaper  PaperCategory = "past_paper"
	CategoryModelPaper PaperCategory = "model_paper"
)

// Valid reports membership in the closed category set.
func (c PaperCategory) Valid() bool {
	switch c {
	case CategoryPastPaper, CategoryModelPaper:
		return true
	}
	return false
}

// PaperSubject enumerates the fixed subject set.
type PaperSubject string

const (
	SubjectMathematics PaperSubject = "mathematics"
	SubjectPhysics     PaperSubject = "physics"
	SubjectChemistry   PaperSubject = "chemistry"
	SubjectBiology     PaperSubject = "biology"
	SubjectEnglish     PaperSubject = "english"
	SubjectHistory     PaperSubject = "history"
)

// Valid reports membership in the closed subject set.
func (s PaperSubject) Valid() bool {
	switch s {
	case SubjectMathematics, SubjectPhysics, SubjectChemistry, SubjectBiology, SubjectEnglish, SubjectHistory:
		return true
	}
	return false
}

// PaperGrade enumerates the supported grade levels.
type PaperGrade string

const (
	Grade9  PaperGrade = "9"
	Grade10 PaperGrade = "10"
	Grade11 PaperGrade = "11"
	Grade12 PaperGrade = "12"
)

// Valid reports membership in the closed grade set.
func (g PaperGrade) Valid() bool {
	switch g {
	case Grade9, Grade10, Grade11, Grade12:
		return true
	}
	return false
}

// Paper is a catalog entry. UploadDate is a calendar date (YYYY-MM-DD);
// Downloads is non-negative and monotonically non-decreasing.
type Paper struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     PaperCategory `json:"category"`
	Subject      PaperSubject  `json:"subject"`
	Grade        PaperGrade    `json:"grade"`
	FileURL      string        `json:"fileUrl"`
	ThumbnailURL string        `json:"thumbnailUrl"`
	UploadDate   string        `json:"uploadDate"`
	UploadedBy   string        `json:"uploadedBy"`
	Downloads    int           `json:"downloads"`
}

// PaperFilter captures the optional criteria combined with logical AND.
// Zero-valued fields are not applied.
type PaperFilter struct {
	Category PaperCategory `json:"category,omitempty" form:"category"`
	Subject  PaperSubject  `json:"subject,omitempty" form:"subject"`
	Grade    PaperGrade    `json:"grade,omitempty" form:"grade"`
	Search   string        `json:"search,omitempty" form:"search"`
}
