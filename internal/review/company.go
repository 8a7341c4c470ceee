package review

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dave/jobwiz-sub002/internal/domain"
)

var companyFileExpr = regexp.MustCompile(`^company-(.+?)(?:-preview)?\.json$`)

const companyPrefix = "company-"

// CompanyResolver derives a company slug from a module or the file it was
// read from. ok is false when the strategy does not apply.
type CompanyResolver func(module domain.ContentModule, filePath string) (slug string, ok bool)

// CompanyResolvers are tried in order; the first match wins.
var CompanyResolvers = []CompanyResolver{
	CompanyFromFileName,
	CompanyFromSlug,
	CompanyFromModuleID,
}

// CompanyFromFileName matches company-<slug>.json and company-<slug>-preview.json.
func CompanyFromFileName(_ domain.ContentModule, filePath string) (string, bool) {
	if filePath == "" {
		return "", false
	}
	m := companyFileExpr.FindStringSubmatch(filepath.Base(filePath))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// CompanyFromSlug strips the company- prefix from the module slug.
func CompanyFromSlug(module domain.ContentModule, _ string) (string, bool) {
	if !strings.HasPrefix(module.Slug, companyPrefix) || len(module.Slug) == len(companyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(module.Slug, companyPrefix), true
}

// CompanyFromModuleID falls back to the module id itself.
func CompanyFromModuleID(module domain.ContentModule, _ string) (string, bool) {
	if module.ID == "" {
		return "", false
	}
	return module.ID, true
}

// ExtractCompany runs CompanyResolvers in order.
func ExtractCompany(module domain.ContentModule, filePath string) string {
	return resolveCompany(CompanyResolvers, module, filePath)
}

func resolveCompany(resolvers []CompanyResolver, module domain.ContentModule, filePath string) string {
	for _, resolve := range resolvers {
		if slug, ok := resolve(module, filePath); ok {
			return slug
		}
	}
	return ""
}
