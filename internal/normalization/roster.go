package normalization

import (
	"oilfield-finance-lab/internal/domain"
)

// CheckFields validates every field and rejects duplicate ids.
// Returns a copy sorted by id.
func CheckFields(fields []domain.Field) ([]domain.Field, error) {
	if len(fields) == 0 {
		return nil, &domain.DataContractError{
			Kind:   domain.KindInvalidValue,
			Table:  domain.TableFields,
			Detail: "field registry is empty",
		}
	}

	seen := make(map[int64]struct{}, len(fields))
	out := make([]domain.Field, 0, len(fields))
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[f.ID]; dup {
			return nil, &domain.DataContractError{
				Kind:    domain.KindDuplicateField,
				Table:   domain.TableFields,
				Column:  "id",
				FieldID: f.ID,
				Detail:  "field id appears more than once",
			}
		}
		seen[f.ID] = struct{}{}
		out = append(out, f)
	}

	SortFields(out)
	return out, nil
}
