package review

// Canonical spreadsheet column headers for one applicant row. The
// backing store is header-addressed, so lookups always go through
// Normalize; these constants are the reference spellings.
const (
	FieldSubmittedAt = "Thời gian"

	FieldFullName         = "Họ và tên"
	FieldGender           = "Giới tính"
	FieldDOB              = "Ngày sinh"
	FieldPOB              = "Nơi sinh"
	FieldEthnicity        = "Dân tộc"
	FieldNationality      = "Quốc tịch"
	FieldIDCardNumber     = "Số CCCD"
	FieldIDCardIssueDate  = "Ngày cấp CCCD"
	FieldIDCardIssuePlace = "Nơi cấp CCCD"
	FieldPhone            = "Số điện thoại"
	FieldEmail            = "Email"
	FieldContactAddress   = "Địa chỉ liên hệ"
	FieldWorkplace        = "Cơ quan công tác"

	FieldTrainingFacility  = "Cơ sở đào tạo"
	FieldFirstChoiceMajor  = "Nguyện vọng 1"
	FieldSecondChoiceMajor = "Nguyện vọng 2"
	FieldThirdChoiceMajor  = "Nguyện vọng 3"
	FieldFirstOrientation  = "Định hướng NV1"
	FieldSecondOrientation = "Định hướng NV2"
	FieldThirdOrientation  = "Định hướng NV3"

	FieldUniversity        = "Trường tốt nghiệp đại học"
	FieldGraduationYear    = "Năm TN"
	FieldGPA10             = "Điểm TB (hệ 10)"
	FieldGPA4              = "Điểm TB (hệ 4)"
	FieldGraduationMajor   = "Ngành tốt nghiệp"
	FieldDegreeClass       = "Loại TN"
	FieldGraduationSystem  = "Hệ TN"
	FieldSupplementaryCert = "Bổ sung kiến thức"

	FieldLanguage           = "Ngoại ngữ"
	FieldLanguageCertType   = "Loại bằng NN"
	FieldLanguageCertIssuer = "Trường cấp bằng NN"
	FieldLanguageScore      = "Điểm NN"
	FieldLanguageCertDate   = "Ngày cấp NN"

	FieldResearchBonus     = "Nghiên cứu khoa học"
	FieldOtherAchievements = "Thành tích khác"
	FieldPriorityCategory  = "Ưu tiên"
	FieldScholarship       = "Học bổng"

	FieldLinkPhoto        = "Link Ảnh thẻ"
	FieldLinkDegree       = "Link Bằng tốt nghiệp"
	FieldLinkTranscript   = "Link Bảng điểm"
	FieldLinkLanguageCert = "Link Chứng chỉ NN"
	FieldLinkPriority     = "Link Ưu tiên"
	FieldLinkResearch     = "Link NCKH"

	FieldDecision       = "Xét duyệt hồ sơ"
	FieldDecisionNote   = "Ghi chú xét duyệt"
	FieldDecisionDate   = "Ngày xét duyệt"
	FieldProcessingDate = "Ngày xử lý"

	FieldAdmissionResult     = "Kết quả trúng tuyển"
	FieldAdmittedMajor       = "Ngành trúng tuyển"
	FieldAdmittedOrientation = "Định hướng trúng tuyển"
)

// Sentinels distinguishing "not chosen" from "chosen but empty".
const (
	SentinelNoPriority     = "0"
	SentinelNoResearch     = "NCKH0"
	SentinelNoAchievements = "Không"
)

// TranslationTable maps legacy free-text labels from old spreadsheet
// rows onto canonical codes. Tables are versioned so an ingestion
// change is visible in the data, not just in the binary.
type TranslationTable struct {
	Version string
	entries map[string]string
}

// Translate returns the canonical code for a legacy label, or the raw
// value unchanged when the label is not in the table.
func (t TranslationTable) Translate(raw string) string {
	if code, ok := t.entries[raw]; ok {
		return code
	}
	return raw
}

func newTable(version string, entries map[string]string) TranslationTable {
	return TranslationTable{Version: version, entries: entries}
}

// LegacyTables bundles every label→code table used when reading old
// rows back into the form.
type LegacyTables struct {
	DegreeClass      TranslationTable
	GraduationSystem TranslationTable
	Language         TranslationTable
	LanguageCertType TranslationTable
	Priority         TranslationTable
	Scholarship      TranslationTable
	ResearchBonus    TranslationTable
}

// LoadLegacyTables builds the current translation table set. Called
// once at startup; the tables are immutable afterwards.
func LoadLegacyTables() LegacyTables {
	return LegacyTables{
		DegreeClass: newTable("2024.1", map[string]string{
			"Xuất sắc":   "XS",
			"Giỏi":       "G",
			"Khá":        "K",
			"Trung bình": "TB",
		}),
		GraduationSystem: newTable("2024.1", map[string]string{
			"Chính quy":  "CQ",
			"Tại chức":   "TC",
			"Từ xa":      "TX",
			"Liên thông": "LT",
		}),
		Language: newTable("2024.1", map[string]string{
			"Tiếng Anh":   "EN",
			"Tiếng Pháp":  "FR",
			"Tiếng Trung": "ZH",
			"Tiếng Nhật":  "JA",
		}),
		LanguageCertType: newTable("2024.1", map[string]string{
			"IELTS":     "IELTS",
			"TOEFL":     "TOEFL",
			"TOEIC":     "TOEIC",
			"DELF/DALF": "DELF",
			"HSK":       "HSK",
			"JLPT":      "JLPT",
		}),
		Priority: newTable("2024.1", map[string]string{
			"Không":                    SentinelNoPriority,
			"Khu vực 1":                "KV1",
			"Ưu tiên 1":                "UT1",
			"Ưu tiên 2":                "UT2",
			"Con thương binh, liệt sĩ": "TBLS",
		}),
		Scholarship: newTable("2024.2", map[string]string{
			"Không":     "0",
			"Miễn 100%": "M100",
			"Giảm 75%":  "G75",
			"Giảm 50%":  "G50",
		}),
		ResearchBonus: newTable("2024.1", map[string]string{
			"Không": SentinelNoResearch,
		}),
	}
}

// MajorNames resolves ranked-choice major codes to display names.
// Falls back to the raw code for values the table does not know.
var MajorNames = map[string]string{
	"KHMT": "Khoa học máy tính",
	"QTKD": "Quản trị kinh doanh",
	"LUAT": "Luật",
	"NNA":  "Ngôn ngữ Anh",
	"CNSH": "Công nghệ sinh học",
}

// MajorName returns the display name for a major code. Unrecognized
// non-empty codes pass through; an empty code reads as undetermined.
func MajorName(code string) string {
	if code == "" {
		return "Chưa xác định"
	}
	if name, ok := MajorNames[code]; ok {
		return name
	}
	return code
}
