package sysinfo

// ModelRecommendation suggests a base model sized to the machine.
type ModelRecommendation struct {
	Model    string `json:"model"`
	Size     string `json:"size"`
	Reason   string `json:"reason"`
	ReasonEn string `json:"reason_en"`
}

// RecommendModels suggests base models for the given available memory in
// gigabytes. Thresholds overlap on purpose: a 10 GB machine gets the
// balanced, fast, and high-quality options; a tight machine gets only
// the light one.
func RecommendModels(availableGB float64) []ModelRecommendation {
	var recs []ModelRecommendation

	if availableGB >= 6 {
		recs = append(recs, ModelRecommendation{
			Model:    "llama3.2:3b",
			Size:     "2.0 GB",
			Reason:   "متوازن - جودة جيدة وسرعة معقولة",
			ReasonEn: "Balanced - good quality and reasonable speed",
		})
	}
	if availableGB >= 3 {
		recs = append(recs, ModelRecommendation{
			Model:    "llama3.2:1b",
			Size:     "1.3 GB",
			Reason:   "سريع - مناسب للاختبار والتطوير",
			ReasonEn: "Fast - suitable for testing and development",
		})
	}
	if availableGB >= 8 {
		recs = append(recs, ModelRecommendation{
			Model:    "llama3.1:8b",
			Size:     "4.7 GB",
			Reason:   "جودة عالية - للمهام المتقدمة",
			ReasonEn: "High quality - for advanced tasks",
		})
	}

	if len(recs) == 0 {
		recs = append(recs, ModelRecommendation{
			Model:    "tinyllama:1.1b",
			Size:     "0.6 GB",
			Reason:   "خفيف جداً - للأنظمة المحدودة",
			ReasonEn: "Very light - for limited systems",
		})
	}

	return recs
}
