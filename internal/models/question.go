package models

// QuestionType discriminates which field composition applies to a content
// record. The set is closed; anything else falls back to the inert
// "unknown" handling in the schema registry.
type QuestionType string

const (
	MCQSingle          QuestionType = "mcq_single"
	MCQMultiple        QuestionType = "mcq_multiple"
	MatchImageText     QuestionType = "match_image_text"
	DrawCircleSingle   QuestionType = "draw_circle_single"
	DrawCircleMultiple QuestionType = "draw_circle_multiple"
	ListenRepeat       QuestionType = "listen_repeat"
	BreakWord          QuestionType = "break_word"
	ComposeWord        QuestionType = "compose_word"
	WriteWords         QuestionType = "write_words"
	FillSentence       QuestionType = "fill_sentence"
	OrderWords         QuestionType = "order_words"
	SelectImageText    QuestionType = "select_image_text"
	ReadQuestion       QuestionType = "read_question"
	FreeText           QuestionType = "free_text"
	FreeTextUpload     QuestionType = "free_text_upload"
)

// KnownQuestionTypes lists every supported type in presentation order.
func KnownQuestionTypes() []QuestionType {
	return []QuestionType{
		MCQSingle,
		MCQMultiple,
		MatchImageText,
		DrawCircleSingle,
		DrawCircleMultiple,
		ListenRepeat,
		BreakWord,
		ComposeWord,
		WriteWords,
		FillSentence,
		OrderWords,
		SelectImageText,
		ReadQuestion,
		FreeText,
		FreeTextUpload,
	}
}

// IsValid reports whether t is one of the known question types.
func (t QuestionType) IsValid() bool {
	for _, known := range KnownQuestionTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// MediaKind identifies which upload collaborator a media field is bound to.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
	MediaFile  MediaKind = "file"
)
