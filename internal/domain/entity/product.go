package entity

import "strings"

// ProductAttributes atributos descriptivos de un producto (PT code).
// No participan en el cálculo; solo identifican el producto en la salida.
type ProductAttributes struct {
	Brand       string
	ProductName string
	PackageSize string
	StandardUOM string
}

// IsEmpty indica si ningún atributo tiene valor.
func (a ProductAttributes) IsEmpty() bool {
	return a.Brand == "" && a.ProductName == "" && a.PackageSize == "" && a.StandardUOM == ""
}

// Merge completa los atributos vacíos de a con los de fallback.
// Los valores ya presentes en a nunca se sobrescriben.
func (a ProductAttributes) Merge(fallback ProductAttributes) ProductAttributes {
	if a.Brand == "" {
		a.Brand = fallback.Brand
	}
	if a.ProductName == "" {
		a.ProductName = fallback.ProductName
	}
	if a.PackageSize == "" {
		a.PackageSize = fallback.PackageSize
	}
	if a.StandardUOM == "" {
		a.StandardUOM = fallback.StandardUOM
	}
	return a
}

// Normalize limpia espacios y unifica la UOM en mayúsculas.
// Los textos "nan" y "None" que llegan de vistas mal tipadas se tratan como vacíos.
func (a ProductAttributes) Normalize() ProductAttributes {
	return ProductAttributes{
		Brand:       CleanText(a.Brand),
		ProductName: CleanText(a.ProductName),
		PackageSize: CleanText(a.PackageSize),
		StandardUOM: strings.ToUpper(CleanText(a.StandardUOM)),
	}
}

// CleanText recorta y colapsa espacios internos.
func CleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	switch strings.ToLower(s) {
	case "nan", "none", "null", "<na>":
		return ""
	}
	return s
}
