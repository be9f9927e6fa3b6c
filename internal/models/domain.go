package models

// Domain names one of the six permissioned data categories
type Domain string

const (
	DomainTransactions Domain = "transactions"
	DomainCredit       Domain = "credit"
	DomainAssets       Domain = "assets"
	DomainEPF          Domain = "epf"
	DomainInvestments  Domain = "investments"
	DomainLiabilities  Domain = "liabilities"
)

// AllDomains lists every domain in load order
var AllDomains = []Domain{
	DomainTransactions,
	DomainCredit,
	DomainAssets,
	DomainEPF,
	DomainInvestments,
	DomainLiabilities,
}

// DisplayName returns the user-facing name of the domain
func (d Domain) DisplayName() string {
	switch d {
	case DomainTransactions:
		return "Transactions"
	case DomainCredit:
		return "Credit"
	case DomainAssets:
		return "Assets"
	case DomainEPF:
		return "EPF"
	case DomainInvestments:
		return "Investments"
	case DomainLiabilities:
		return "Liabilities"
	default:
		return string(d)
	}
}

// Valid reports whether d is one of the known domains
func (d Domain) Valid() bool {
	for _, known := range AllDomains {
		if d == known {
			return true
		}
	}
	return false
}
