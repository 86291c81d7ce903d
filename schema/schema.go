// Package schema checks company profile records against the output contract.
//
// The contract is data: ProfileSchema is a Draft-7 JSON Schema document
// compiled once with github.com/santhosh-tekuri/jsonschema. Validation is a
// report. It never fails, never stops at the first problem and never
// modifies the records it inspects.
package schema

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/coprofile"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ProfileSchema is the contract every serialized coprofile.CompanyProfile
// must meet. patents, research_analysis and patent_activity accept any value.
const ProfileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "url": {"type": "string"},
    "id": {"type": ["string", "null"]},
    "company_name": {"type": ["string", "null"]},
    "company_socials": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "domain": {"type": "string"},
          "link": {"type": "string"}
        },
        "required": ["domain", "link"]
      }
    },
    "year_founded": {"type": ["integer", "null"]},
    "status": {"type": ["string", "null"]},
    "employees": {"type": ["integer", "null"]},
    "latest_deal_type": {"type": ["string", "null"]},
    "financing_rounds": {"type": ["integer", "null"]},
    "investments": {"type": ["integer", "null"]},
    "description": {"type": ["string", "null"]},
    "contact_information": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "Type": {"type": "string"},
          "value": {"type": "string"}
        },
        "required": ["Type", "value"]
      }
    },
    "patents": {},
    "competitors": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "company_name": {"type": ["string", "null"]},
          "financing_status": {"type": ["string", "null"]},
          "link": {"type": ["string", "null"]},
          "location": {"type": ["string", "null"]}
        },
        "required": ["company_name", "financing_status", "link", "location"]
      }
    },
    "research_analysis": {},
    "patent_activity": {},
    "all_investments": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "company_name": {"type": ["string", "null"]},
          "deal_date": {"type": ["string", "null"]},
          "deal_size": {"type": ["string", "null"]},
          "deal_type": {"type": ["string", "null"]},
          "industry": {"type": ["string", "null"]}
        },
        "required": ["company_name", "deal_date", "deal_size", "deal_type", "industry"]
      }
    },
    "faq": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "type": {"type": "string"},
          "value": {"type": "string"}
        },
        "required": ["type", "value"]
      }
    },
    "investors": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": [
    "url", "id", "company_name", "company_socials", "year_founded", "status",
    "employees", "latest_deal_type", "financing_rounds", "investments",
    "description", "contact_information", "patents", "competitors",
    "research_analysis", "patent_activity", "all_investments", "faq", "investors"
  ]
}`

// Profile is ProfileSchema compiled.
var Profile = MustCompile(ProfileSchema)

var printer = message.NewPrinter(language.English)

// Schema is a compiled contract.
type Schema struct {
	sch *jsonschema.Schema
}

// Compile compiles a JSON Schema document. Documents without $schema are
// treated as Draft 7.
func Compile(doc string) (*Schema, error) {
	v, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		return nil, coprofile.Errorf(coprofile.EINVALID, "invalid schema document: %v", err)
	}
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)
	if err := c.AddResource("coprofile.json", v); err != nil {
		return nil, coprofile.Errorf(coprofile.EINVALID, "invalid schema document: %v", err)
	}
	sch, err := c.Compile("coprofile.json")
	if err != nil {
		return nil, coprofile.Errorf(coprofile.EINVALID, "failed to compile schema: %v", err)
	}
	return &Schema{sch: sch}, nil
}

// MustCompile is like Compile but panics if the document is invalid.
func MustCompile(doc string) *Schema {
	s, err := Compile(doc)
	if err != nil {
		panic(err)
	}
	return s
}

// Violation is one deviation from the contract.
type Violation struct {
	// Index is the position of the offending record in the batch.
	Index int
	// Path locates the value inside the record, e.g. "faq[2].value".
	// It is empty for problems with the record itself.
	Path    string
	Message string
}

func (v Violation) Error() string {
	if v.Path == "" {
		return fmt.Sprintf("record %d: %s", v.Index, v.Message)
	}
	return fmt.Sprintf("record %d: %s: %s", v.Index, v.Path, v.Message)
}

// Validate checks decoded JSON records against Profile and returns every
// violation found.
func Validate(records []map[string]any) []Violation {
	return Profile.Validate(records)
}

// Validate checks decoded JSON records against s. Violations are ordered by
// record, then by path.
func (s *Schema) Validate(records []map[string]any) []Violation {
	var violations []Violation
	for i, record := range records {
		violations = append(violations, s.validateRecord(i, record)...)
	}
	return violations
}

// ValidateProfiles encodes each profile the way the writers do and checks
// the result against Profile.
func ValidateProfiles(profiles []*coprofile.CompanyProfile) []Violation {
	var violations []Violation
	for i, p := range profiles {
		record, err := toRecord(p)
		if err != nil {
			violations = append(violations, Violation{Index: i, Message: err.Error()})
			continue
		}
		violations = append(violations, Profile.validateRecord(i, record)...)
	}
	return violations
}

func (s *Schema) validateRecord(index int, record map[string]any) []Violation {
	err := s.sch.Validate(record)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Violation{{Index: index, Message: err.Error()}}
	}

	var violations []Violation
	for _, leaf := range leaves(verr, nil) {
		path := instancePath(record, leaf.InstanceLocation)
		if k, ok := leaf.ErrorKind.(*kind.Required); ok {
			for _, name := range k.Missing {
				violations = append(violations, Violation{
					Index:   index,
					Path:    join(path, name),
					Message: fmt.Sprintf("missing required key %q", name),
				})
			}
			continue
		}
		violations = append(violations, Violation{
			Index:   index,
			Path:    path,
			Message: describe(leaf.ErrorKind),
		})
	}
	slices.SortStableFunc(violations, func(a, b Violation) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return violations
}

func leaves(verr *jsonschema.ValidationError, acc []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(verr.Causes) == 0 {
		return append(acc, verr)
	}
	for _, cause := range verr.Causes {
		acc = leaves(cause, acc)
	}
	return acc
}

func describe(k jsonschema.ErrorKind) string {
	if t, ok := k.(*kind.Type); ok {
		return fmt.Sprintf("expected %s, got %s", strings.Join(t.Want, " or "), t.Got)
	}
	return k.LocalizedString(printer)
}

// instancePath renders a JSON pointer token list as "a.b[0].c", using the
// record to tell array indexes from object keys.
func instancePath(record any, tokens []string) string {
	var b strings.Builder
	v := record
	for _, tok := range tokens {
		switch node := v.(type) {
		case []any:
			b.WriteString("[" + tok + "]")
			if i, err := strconv.Atoi(tok); err == nil && i >= 0 && i < len(node) {
				v = node[i]
			} else {
				v = nil
			}
		case map[string]any:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(tok)
			v = node[tok]
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(tok)
			v = nil
		}
	}
	return b.String()
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func toRecord(p *coprofile.CompanyProfile) (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}
