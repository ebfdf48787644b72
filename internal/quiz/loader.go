package quiz

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// rawQuestion mirrors the upstream questions.json payload. Options and
// correct_answer are kept raw because their JSON shape decides the question
// kind: object-of-strings plus label array for standard questions,
// object-of-arrays plus object for mapping questions.
type rawQuestion struct {
	Number      int             `json:"question_number"`
	Prompt      string          `json:"question"`
	Explanation string          `json:"explanation"`
	Options     json.RawMessage `json:"options"`
	Correct     json.RawMessage `json:"correct_answer"`
}

// LoadBank reads a question bank from a JSON file. Any failure is returned to
// the caller, which is expected to continue with EmptyBank rather than abort.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read questions file %s", path)
	}

	var raw []rawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse questions file %s", path)
	}

	questions := make([]Question, 0, len(raw))
	for _, item := range raw {
		question, err := buildQuestion(item)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	bank, err := NewBank(questions)
	if err != nil {
		return nil, errors.Wrapf(err, "validate questions file %s", path)
	}
	return bank, nil
}

func buildQuestion(raw rawQuestion) (Question, error) {
	question := Question{
		Number:      raw.Number,
		Prompt:      raw.Prompt,
		Explanation: raw.Explanation,
	}

	optionsMapping := firstJSONByte(raw.Options) == '{' && objectOfArrays(raw.Options)
	correctMapping := firstJSONByte(raw.Correct) == '{'
	if optionsMapping != correctMapping {
		return Question{}, errors.Errorf("question %d: options and correct_answer shapes do not match", raw.Number)
	}

	if correctMapping {
		subFields, err := parseSubFields(raw.Options, raw.Correct)
		if err != nil {
			return Question{}, errors.Wrapf(err, "question %d", raw.Number)
		}
		question.Kind = KindMapping
		question.SubFields = subFields
		return question, nil
	}

	options, err := parseOrderedStrings(raw.Options)
	if err != nil {
		return Question{}, errors.Wrapf(err, "question %d: parse options", raw.Number)
	}
	var correctLabels []string
	if err := json.Unmarshal(raw.Correct, &correctLabels); err != nil {
		return Question{}, errors.Wrapf(err, "question %d: parse correct_answer", raw.Number)
	}

	question.Options = options
	question.CorrectLabels = correctLabels
	question.Kind = KindSingle
	if len(correctLabels) > 1 {
		question.Kind = KindMulti
	}
	return question, nil
}

func parseSubFields(rawOptions, rawCorrect json.RawMessage) ([]SubField, error) {
	var correctByName map[string]string
	if err := json.Unmarshal(rawCorrect, &correctByName); err != nil {
		return nil, errors.Wrap(err, "parse correct_answer")
	}

	// Go maps drop JSON key order, but the display contract iterates
	// sub-fields in declared order, so the options object is walked with the
	// decoder token stream instead.
	subFields := make([]SubField, 0, len(correctByName))
	err := walkObject(rawOptions, func(name string, dec *json.Decoder) error {
		var candidates []string
		if err := dec.Decode(&candidates); err != nil {
			return errors.Wrapf(err, "parse candidates for %q", name)
		}
		correct, ok := correctByName[name]
		if !ok {
			return errors.Errorf("no correct value for sub-field %q", name)
		}
		subFields = append(subFields, SubField{Name: name, Candidates: candidates, Correct: correct})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subFields, nil
}

func parseOrderedStrings(raw json.RawMessage) ([]Option, error) {
	options := make([]Option, 0, 5)
	err := walkObject(raw, func(label string, dec *json.Decoder) error {
		var text string
		if err := dec.Decode(&text); err != nil {
			return errors.Wrapf(err, "parse option %q", label)
		}
		options = append(options, Option{Label: label, Text: text})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return options, nil
}

// walkObject visits each key of a JSON object in declared order, handing the
// decoder to the callback positioned at the key's value.
func walkObject(raw json.RawMessage, visit func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "read object")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("expected a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "read object key")
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("expected a string object key")
		}
		if err := visit(key, dec); err != nil {
			return err
		}
	}

	_, err = dec.Token() // closing brace
	return errors.Wrap(err, "read object end")
}

func firstJSONByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// objectOfArrays reports whether the first value inside a JSON object is an
// array, which distinguishes mapping options from standard label->text maps.
func objectOfArrays(raw json.RawMessage) bool {
	isArrays := false
	_ = walkObject(raw, func(_ string, dec *json.Decoder) error {
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		isArrays = firstJSONByte(value) == '['
		return errors.New("stop after first value")
	})
	return isArrays
}
