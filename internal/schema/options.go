package schema

// Option is one entry of an enumeration field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionCatalog maps enumeration field names to their option lists. Select
// fields without an explicit override look their options up here; unknown
// names resolve to an empty list. The builtin catalog covers the field names
// the original screens relied on — per-entity catalogs loaded from
// configuration extend or replace it.
type OptionCatalog map[string][]Option

// Lookup returns the options for a field name, consulting the builtin
// catalog when the entry is absent.
func (c OptionCatalog) Lookup(field string) []Option {
	if c != nil {
		if opts, ok := c[field]; ok {
			return opts
		}
	}
	return builtinOptions[field]
}

var builtinOptions = OptionCatalog{
	"tipo": {
		{Value: "PF", Label: "Pessoa Física"},
		{Value: "PJ", Label: "Pessoa Jurídica"},
	},
	"estado": ufOptions,
}

// The 27 federative units.
var ufOptions = []Option{
	{Value: "AC", Label: "Acre"},
	{Value: "AL", Label: "Alagoas"},
	{Value: "AP", Label: "Amapá"},
	{Value: "AM", Label: "Amazonas"},
	{Value: "BA", Label: "Bahia"},
	{Value: "CE", Label: "Ceará"},
	{Value: "DF", Label: "Distrito Federal"},
	{Value: "ES", Label: "Espírito Santo"},
	{Value: "GO", Label: "Goiás"},
	{Value: "MA", Label: "Maranhão"},
	{Value: "MT", Label: "Mato Grosso"},
	{Value: "MS", Label: "Mato Grosso do Sul"},
	{Value: "MG", Label: "Minas Gerais"},
	{Value: "PA", Label: "Pará"},
	{Value: "PB", Label: "Paraíba"},
	{Value: "PR", Label: "Paraná"},
	{Value: "PE", Label: "Pernambuco"},
	{Value: "PI", Label: "Piauí"},
	{Value: "RJ", Label: "Rio de Janeiro"},
	{Value: "RN", Label: "Rio Grande do Norte"},
	{Value: "RS", Label: "Rio Grande do Sul"},
	{Value: "RO", Label: "Rondônia"},
	{Value: "RR", Label: "Roraima"},
	{Value: "SC", Label: "Santa Catarina"},
	{Value: "SP", Label: "São Paulo"},
	{Value: "SE", Label: "Sergipe"},
	{Value: "TO", Label: "Tocantins"},
}
