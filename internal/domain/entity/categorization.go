package entity

// MainCategory categoría principal (mutuamente excluyente) de un producto.
type MainCategory string

const (
	CategoryNetShortage MainCategory = "net_shortage"
	CategoryNetSurplus  MainCategory = "net_surplus"
	CategoryBalanced    MainCategory = "balanced"
)

// Label nombre legible de la categoría.
func (c MainCategory) Label() string {
	switch c {
	case CategoryNetShortage:
		return "Net Shortage"
	case CategoryNetSurplus:
		return "Net Surplus"
	case CategoryBalanced:
		return "Balanced"
	}
	return string(c)
}

// ProductCategorization categoría principal más las banderas de timing, que son independientes.
type ProductCategorization struct {
	ProductID      string
	Main           MainCategory
	TimingShortage bool
	TimingSurplus  bool
}
