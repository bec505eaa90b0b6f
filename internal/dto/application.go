package dto

// ApplicationForm mirrors the multi-section application form. All
// values travel as strings because the backing store is a spreadsheet;
// format rules are enforced by the application service on submit.
type ApplicationForm struct {
	// Section I — personal information
	FullName         string `json:"full_name"`
	Gender           string `json:"gender"`
	DOB              string `json:"dob"`
	POB              string `json:"pob"`
	Ethnicity        string `json:"ethnicity"`
	Nationality      string `json:"nationality"`
	IDCardNumber     string `json:"id_card_number"`
	IDCardIssueDate  string `json:"id_card_issue_date"`
	IDCardIssuePlace string `json:"id_card_issue_place"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	ContactAddress   string `json:"contact_address"`
	Workplace        string `json:"workplace"`

	// Section II — ranked choices
	TrainingFacility        string `json:"training_facility"`
	FirstChoiceMajor        string `json:"first_choice_major"`
	SecondChoiceMajor       string `json:"second_choice_major"`
	ThirdChoiceMajor        string `json:"third_choice_major"`
	FirstChoiceOrientation  string `json:"first_choice_orientation"`
	SecondChoiceOrientation string `json:"second_choice_orientation"`
	ThirdChoiceOrientation  string `json:"third_choice_orientation"`

	// Section III — undergraduate record
	University        string `json:"university"`
	GraduationYear    string `json:"graduation_year"`
	GPA10             string `json:"gpa10"`
	GPA4              string `json:"gpa4"`
	GraduationMajor   string `json:"graduation_major"`
	DegreeClass       string `json:"degree_classification"`
	GraduationSystem  string `json:"graduation_system"`
	SupplementaryCert string `json:"supplementary_cert"`

	// Section IV — foreign language
	Language           string `json:"language"`
	LanguageCertType   string `json:"language_cert_type"`
	LanguageCertIssuer string `json:"language_cert_issuer"`
	LanguageScore      string `json:"language_score"`
	LanguageCertDate   string `json:"language_cert_date"`

	// Sections V–VII — bonuses, priority, scholarship
	ResearchBonus     string `json:"research_bonus"`
	OtherAchievements string `json:"other_achievements"`
	PriorityCategory  string `json:"priority_category"`
	ScholarshipPolicy string `json:"scholarship_policy"`

	// Section VIII — uploaded document links
	LinkPhoto        string `json:"link_photo"`
	LinkDegree       string `json:"link_degree"`
	LinkTranscript   string `json:"link_transcript"`
	LinkLanguageCert string `json:"link_language_cert"`
	LinkPriority     string `json:"link_priority"`
	LinkResearch     string `json:"link_research"`
}

// AutofillRequest carries free text (CV, resume) to be parsed into
// form fields.
type AutofillRequest struct {
	Text string `json:"text" validate:"required"`
}

// AutofillResponse returns the best-effort extracted fields. Absent
// fields were not found in the text.
type AutofillResponse struct {
	Fields map[string]string `json:"fields"`
}

// UploadDocumentRequest carries one base64-encoded supporting file for
// a document slot (one of the six link columns).
type UploadDocumentRequest struct {
	Slot     string `json:"slot" validate:"required"`
	FileName string `json:"file_name" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
	FileData string `json:"file_data" validate:"required"`
}

// UploadDocumentResponse returns the stored file URL.
type UploadDocumentResponse struct {
	FileURL string `json:"file_url"`
}
