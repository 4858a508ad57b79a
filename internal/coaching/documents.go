package coaching

import (
	"github.com/2beens/coachportal/internal/docstore"
)

// DecodeAll decodes every document into a T, keeping the store order.
func DecodeAll[T any](docs []docstore.Document) ([]T, error) {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
