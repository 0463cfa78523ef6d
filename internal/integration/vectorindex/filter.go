package vectorindex

// Qdrant filter clauses. The builder always pins the requesting user's id;
// document scoping is a single "match any" clause over the scoped id set, so
// the unscoped, single-document and multi-document cases all go through the
// same shape (an empty set simply adds no clause).

type matchValue struct {
	Value string `json:"value"`
}

type matchAny struct {
	Any []string `json:"any"`
}

type fieldCondition struct {
	Key   string `json:"key"`
	Match any    `json:"match"`
}

type filter struct {
	Must []fieldCondition `json:"must"`
}

func buildFilter(userID string, documentIDs []string) filter {
	f := filter{
		Must: []fieldCondition{
			{Key: "user_id", Match: matchValue{Value: userID}},
		},
	}
	if len(documentIDs) > 0 {
		f.Must = append(f.Must, fieldCondition{
			Key:   "document_id",
			Match: matchAny{Any: documentIDs},
		})
	}
	return f
}
