package schema

type PublicationType string

const (
	JournalPaper     PublicationType = "journal-paper"
	ConferencePaper  PublicationType = "conference-paper"
	BookChapter      PublicationType = "book-chapter"
	Thesis           PublicationType = "thesis"
	TechnicalReport  PublicationType = "technical-report"
	OtherPublication PublicationType = "other"
)

// Label replies the human readable label for the publication type.
func (t PublicationType) Label() string {
	switch t {
	case JournalPaper:
		return "Article in an international journal"
	case ConferencePaper:
		return "Paper in the proceedings of an international conference"
	case BookChapter:
		return "Chapter in an international book"
	case Thesis:
		return "Thesis"
	case TechnicalReport:
		return "Technical report"
	default:
		return "Other publication"
	}
}

func (t PublicationType) Valid() bool {
	switch t {
	case JournalPaper, ConferencePaper, BookChapter, Thesis, TechnicalReport, OtherPublication:
		return true
	}
	return false
}
