package quiz

import (
	"math/rand"
)

// ShuffleOptions returns a copy of the question with its answer options in a
// fresh uniformly random order. The input is never mutated, so the bank's
// snapshot stays pristine across attempts.
func ShuffleOptions(question Question) Question {
	if question.IsMapping() {
		return shuffleMappingOptions(question)
	}
	return shuffleStandardOptions(question)
}

// shuffleStandardOptions permutes option texts across the fixed label
// sequence and remaps the correct labels so each originally-correct text is
// still the one marked correct. When two options share identical text the
// remap resolves by first match in declared label order; which duplicate ends
// up "the" correct one is inherited upstream ambiguity.
func shuffleStandardOptions(question Question) Question {
	texts := make([]string, len(question.Options))
	for idx, option := range question.Options {
		texts[idx] = option.Text
	}
	rand.Shuffle(len(texts), func(i, j int) {
		texts[i], texts[j] = texts[j], texts[i]
	})

	options := make([]Option, len(texts))
	newLabelByOriginal := make(map[string]string, len(texts))
	for idx, text := range texts {
		label := question.Options[idx].Label
		options[idx] = Option{Label: label, Text: text}
		for _, original := range question.Options {
			if original.Text == text {
				newLabelByOriginal[original.Label] = label
				break
			}
		}
	}

	correct := make([]string, len(question.CorrectLabels))
	for idx, label := range question.CorrectLabels {
		correct[idx] = newLabelByOriginal[label]
	}

	shuffled := question
	shuffled.Options = options
	shuffled.CorrectLabels = correct
	return shuffled
}

// shuffleMappingOptions permutes each sub-field's candidate list
// independently. The correct value is matched by content, not position, so it
// carries over verbatim.
func shuffleMappingOptions(question Question) Question {
	subFields := make([]SubField, len(question.SubFields))
	for idx, sub := range question.SubFields {
		candidates := make([]string, len(sub.Candidates))
		copy(candidates, sub.Candidates)
		rand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		subFields[idx] = SubField{Name: sub.Name, Candidates: candidates, Correct: sub.Correct}
	}

	shuffled := question
	shuffled.SubFields = subFields
	return shuffled
}
