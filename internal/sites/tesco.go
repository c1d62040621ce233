// Package sites carries the per-site extraction knowledge: which
// markup holds the record containers and pagination controls, and the
// ordered rule tables for every field. The orchestrator is composed
// with a Site value instead of being subclassed per target.
package sites

import (
	"github.com/promo-watch/promoscrape/internal/extract"
	"github.com/promo-watch/promoscrape/pkg/models"
)

// Detail-page field names beyond the listing schema.
const (
	FieldDescription  = "description"
	FieldIngredients  = "ingredients"
	FieldAllergens    = "allergens"
	FieldManufacturer = "manufacturer"
	FieldDistributor  = "distributor"
	FieldCategoryLink = "category_link"
)

// Site bundles everything site-specific the scrape pipeline needs.
type Site struct {
	// Listing page structure.
	ContainerSelector  string
	ItemSelector       string
	PaginationSelector string
	// CategoryPattern matches hub-page links pointing at category
	// listings.
	CategoryPattern string

	Listing extract.Table
	Detail  extract.Table
}

// Tesco describes the Tesco SK grocery storefront. The styled-component
// class hashes churn with frontend deploys, so each field carries the
// stable design-system class as the primary rule and the hashed chain
// as a fallback; a miss on both degrades to the sentinel rather than
// an error.
func Tesco() Site {
	return Site{
		ContainerSelector:  "ul.product-list.grid",
		ItemSelector:       "li.product-list--list-item",
		PaginationSelector: "li.pagination-btn-holder",
		CategoryPattern:    "/groceries/en-GB/shop/",
		Listing: extract.Table{
			Fields: []string{"name", "current_price", "regular_price", "discount", "validity_date"},
			Rules: map[string][]extract.Rule{
				"name": {
					{Locate: extract.Text("span.ddsweb-link__text")},
					{Locate: extract.Text("span.styled__Text-sc-1i711qa-1.xZAYu.ddsweb-link__text")},
				},
				"current_price": {
					{Locate: extract.Text("p.ddsweb-value-bar__content-text"), Transform: extract.Before("€")},
					{Locate: extract.Text("p.text__StyledText-sc-1jpzi8m-0.dxeTiV.ddsweb-text"), Transform: extract.Before("€")},
				},
				"regular_price": {
					{Locate: extract.Text("p.beans-price__text"), Transform: extract.Before("€")},
					{Locate: extract.Text("p.styled__StyledHeading-sc-119w3hf-2.jWPEtj.styled__Text-sc-8qlq5b-1.lnaeiZ"), Transform: extract.Before("€")},
				},
				// The terms line reads like "S Clubcard 3.49 € do 24.09." —
				// the label tokens prove which part is which.
				"discount": {
					{Locate: extract.Text("p.ddsweb-value-bar__terms"), Transform: extract.Chain(extract.After("Clubcard"), extract.Before("€"))},
				},
				"validity_date": {
					{Locate: extract.Text("p.ddsweb-value-bar__terms"), Transform: extract.After("do")},
				},
			},
		},
		Detail: extract.Table{
			Fields: []string{
				"name", "current_price", "regular_price", "discount", "validity_date",
				FieldDescription, FieldIngredients, FieldAllergens,
				FieldManufacturer, FieldDistributor, FieldCategoryLink,
			},
			Rules: map[string][]extract.Rule{
				"name": {
					{Locate: extract.Text("h1.product-details-tile__title")},
				},
				"current_price": {
					{Locate: extract.Text("span.price-value"), Transform: extract.Before("€")},
				},
				"regular_price": {
					{Locate: extract.Text("div.price-per-sellable-unit--price-per-item"), Transform: extract.Before("€")},
				},
				"discount": {
					{Locate: extract.Text("span.offer-text"), Transform: extract.BeforeRequired("bežná cena")},
				},
				"validity_date": {
					{Locate: extract.SiblingText("span.offer-text", "span.dates")},
				},
				FieldDescription: {
					{Locate: extract.Text("div.product-info-block--product-description ul")},
					{Locate: extract.Text("div.product-info-block--product-description")},
				},
				FieldIngredients: {
					{Locate: extract.Text("div.product-info-block--ingredients p")},
				},
				FieldAllergens: {
					{Locate: extract.Text("div.product-info-block--allergens ul")},
				},
				FieldManufacturer: {
					{Locate: extract.Text("div.product-info-block--manufacturer-address")},
				},
				FieldDistributor: {
					{Locate: extract.Text("div.product-info-block--distributor-address")},
				},
				FieldCategoryLink: {
					{Locate: extract.Attr("li.ddsweb-breadcrumb__list-item a", "href")},
				},
			},
		},
	}
}

// DescriptionHTML returns the raw HTML of the detail-page description
// block for markdown conversion, or "" when absent.
var DescriptionHTML = extract.InnerHTML("div.product-info-block--product-description")

// RecordFromValues maps a listing extraction result onto the fixed
// record schema, stamping the source the rows came from.
func RecordFromValues(values map[string]string, source string) models.Record {
	return models.Record{
		Name:         valueOr(values, "name"),
		CurrentPrice: valueOr(values, "current_price"),
		RegularPrice: valueOr(values, "regular_price"),
		Discount:     valueOr(values, "discount"),
		ValidityDate: valueOr(values, "validity_date"),
		Source:       source,
	}
}

// DetailFromValues maps a detail extraction result onto ItemDetail.
func DetailFromValues(values map[string]string, source string) models.ItemDetail {
	return models.ItemDetail{
		Record:       RecordFromValues(values, source),
		Description:  valueOr(values, FieldDescription),
		Ingredients:  valueOr(values, FieldIngredients),
		Allergens:    valueOr(values, FieldAllergens),
		Manufacturer: valueOr(values, FieldManufacturer),
		Distributor:  valueOr(values, FieldDistributor),
		CategoryLink: valueOr(values, FieldCategoryLink),
	}
}

func valueOr(values map[string]string, field string) string {
	if v, ok := values[field]; ok && v != "" {
		return v
	}
	return models.Sentinel
}
