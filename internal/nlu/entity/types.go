package entity

// Type tags what kind of value an Entity carries.
type Type string

const (
	TypeAccountNumber   Type = "account_number"
	TypeCardNumber      Type = "card_number"
	TypeAmount          Type = "amount"
	TypeTransactionID   Type = "transaction_id"
	TypeReason          Type = "reason"
	TypeCardType        Type = "card_type"
	TypeAccountType     Type = "account_type"
	TypeTransferType    Type = "transfer_type"
	TypeBeneficiaryName Type = "beneficiary_name"
	TypeLocation        Type = "location"
	TypeDate            Type = "date"
	TypeEmail           Type = "email"
	TypePhone           Type = "phone"
)

// Entity is a typed span of data found in an utterance.
// Resolved is only set for dates, as an ISO date or an ISO interval.
type Entity struct {
	Type     Type   `json:"entity"`
	Value    string `json:"value"`
	Resolved string `json:"resolved,omitempty"`
}

// Group collects entity values by type, keeping the extraction order.
func Group(entities []Entity) map[Type][]string {
	out := make(map[Type][]string, len(entities))
	for _, e := range entities {
		out[e.Type] = append(out[e.Type], e.Value)
	}
	return out
}
