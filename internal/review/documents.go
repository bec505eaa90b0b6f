package review

// RequiredDocument describes one supporting file slot: the column
// holding its URL, the name shown to the applicant, and the predicate
// deciding whether the slot is mandatory for this record.
type RequiredDocument struct {
	Key         string
	DisplayName string
	IsRequired  func(Record) bool
}

func always(Record) bool { return true }

func hasPriorityCategory(r Record) bool {
	v, ok := r.Get(FieldPriorityCategory)
	return ok && v != SentinelNoPriority
}

func hasBonusClaim(r Record) bool {
	if v, ok := r.Get(FieldResearchBonus); ok && v != SentinelNoResearch {
		return true
	}
	if v, ok := r.Get(FieldOtherAchievements); ok && v != SentinelNoAchievements {
		return true
	}
	return false
}

// RequiredDocuments is the fixed slot list in declaration order. The
// last two are conditional: priority proof only when a priority
// category is claimed, research proof only when a bonus is claimed.
var RequiredDocuments = []RequiredDocument{
	{Key: FieldLinkPhoto, DisplayName: "1. Ảnh thẻ", IsRequired: always},
	{Key: FieldLinkDegree, DisplayName: "2. Bản scan Bằng tốt nghiệp", IsRequired: always},
	{Key: FieldLinkTranscript, DisplayName: "3. Bản scan Bảng điểm", IsRequired: always},
	{Key: FieldLinkLanguageCert, DisplayName: "4. Bản scan Chứng chỉ ngoại ngữ", IsRequired: always},
	{Key: FieldLinkPriority, DisplayName: "5. Minh chứng đối tượng ưu tiên", IsRequired: hasPriorityCategory},
	{Key: FieldLinkResearch, DisplayName: "6. Minh chứng NCKH và thành tích khác", IsRequired: hasBonusClaim},
}

// MissingDocuments lists the display names of mandatory documents
// whose URL cell is absent, empty or whitespace-only, in slot order.
func MissingDocuments(rec Record) []string {
	var missing []string
	for _, doc := range RequiredDocuments {
		if !doc.IsRequired(rec) {
			continue
		}
		if _, ok := rec.Get(doc.Key); !ok {
			missing = append(missing, doc.DisplayName)
		}
	}
	return missing
}
