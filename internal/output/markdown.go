package output

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"

	"github.com/promo-watch/promoscrape/pkg/models"
)

// SaveItemMarkdown renders one item detail as a Markdown document. The
// description block is converted from its page HTML when available so
// list structure survives; everything else is emitted as label lines.
func SaveItemMarkdown(detail models.ItemDetail, path string) error {
	var sb strings.Builder

	sb.WriteString("# " + detail.Name + "\n\n")
	writeField(&sb, "Current price", detail.CurrentPrice)
	writeField(&sb, "Regular price", detail.RegularPrice)
	writeField(&sb, "Discount", detail.Discount)
	writeField(&sb, "Valid until", detail.ValidityDate)
	writeField(&sb, "Category", detail.CategoryLink)
	sb.WriteString("\n")

	if desc := descriptionMarkdown(detail); desc != "" {
		sb.WriteString("## Description\n\n" + desc + "\n\n")
	}
	writeSection(&sb, "Ingredients", detail.Ingredients)
	writeSection(&sb, "Allergens", detail.Allergens)
	writeSection(&sb, "Manufacturer", detail.Manufacturer)
	writeSection(&sb, "Distributor", detail.Distributor)

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// descriptionMarkdown converts the description HTML block to Markdown,
// falling back to the plain extracted text.
func descriptionMarkdown(detail models.ItemDetail) string {
	if detail.DescriptionHTML != "" {
		cleaned, err := CleanHTML(detail.DescriptionHTML)
		if err == nil {
			converter := md.NewConverter("", true, nil)
			converter.Use(plugin.GitHubFlavored())
			if out, err := converter.ConvertString(cleaned); err == nil {
				return strings.TrimSpace(out)
			}
		}
	}
	if detail.Description != models.Sentinel {
		return detail.Description
	}
	return ""
}

func writeField(sb *strings.Builder, label, value string) {
	if value == models.Sentinel || value == "" {
		return
	}
	fmt.Fprintf(sb, "- **%s:** %s\n", label, value)
}

func writeSection(sb *strings.Builder, heading, value string) {
	if value == models.Sentinel || value == "" {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n%s\n\n", heading, value)
}
