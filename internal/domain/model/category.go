package model

import "strings"

type Category string

const (
	CategoryEletronicos      Category = "ELETRONICOS"
	CategoryRoupas           Category = "ROUPAS"
	CategoryLivros           Category = "LIVROS"
	CategoryCasaJardim       Category = "CASA_JARDIM"
	CategoryEsportes         Category = "ESPORTES"
	CategoryBeleza           Category = "BELEZA"
	CategoryBrinquedos       Category = "BRINQUEDOS"
	CategoryAutomotivo       Category = "AUTOMOTIVO"
	CategoryAlimentosBebidas Category = "ALIMENTOS_BEBIDAS"
	CategorySaude            Category = "SAUDE"
)

var categories = []Category{
	CategoryEletronicos,
	CategoryRoupas,
	CategoryLivros,
	CategoryCasaJardim,
	CategoryEsportes,
	CategoryBeleza,
	CategoryBrinquedos,
	CategoryAutomotivo,
	CategoryAlimentosBebidas,
	CategorySaude,
}

// 表示ラベル
var categoryLabels = map[Category]string{
	CategoryEletronicos:      "Eletrônicos",
	CategoryRoupas:           "Roupas e Acessórios",
	CategoryLivros:           "Livros",
	CategoryCasaJardim:       "Casa e Jardim",
	CategoryEsportes:         "Esportes e Lazer",
	CategoryBeleza:           "Beleza e Cuidados",
	CategoryBrinquedos:       "Brinquedos",
	CategoryAutomotivo:       "Automotivo",
	CategoryAlimentosBebidas: "Alimentos e Bebidas",
	CategorySaude:            "Saúde",
}

func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Label() string {
	return categoryLabels[c]
}

// FindCategory は値（ELETRONICOS）でもラベル（Eletrônicos）でも引ける。
func FindCategory(input string) (Category, bool) {
	s := strings.TrimSpace(input)

	for _, c := range categories {
		if string(c) == s {
			return c, true
		}
	}
	for c, label := range categoryLabels {
		if label == s {
			return c, true
		}
	}

	return "", false
}

// バリデーションエラー用のメッセージ
func InvalidCategoryMessage() string {
	values := make([]string, 0, len(categories))
	for _, c := range categories {
		values = append(values, string(c))
	}
	return "invalid category: valid values are " + strings.Join(values, ", ")
}
