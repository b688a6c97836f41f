package sharepoint

import (
	"net/url"
	"strings"

	v1 "github.com/byxorna/doclib/pkg/types/v1"
)

var (
	// itemFields are the list item fields every query selects
	itemFields = []string{"Id", "Title", "FileLeafRef", "Modified", "FileRef", "Editor/Title"}
	// itemOrder is part of the contract callers observe: newest first
	itemOrder = "Modified desc"

	// documentLibraryTemplate is the BaseTemplate of document libraries
	documentLibraryTemplate = "101"
)

// quoteLiteral renders s as an OData string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ItemsQuery is the query string of the metadata query.
func ItemsQuery() url.Values {
	q := url.Values{}
	q.Set("$select", strings.Join(itemFields, ","))
	q.Set("$expand", "Editor")
	q.Set("$orderby", itemOrder)
	return q
}

// ItemsPath is the API path of the items of collection, relative to the site.
func ItemsPath(collection v1.CollectionTarget) string {
	return "_api/web/lists/getByTitle(" + quoteLiteral(collection.OrDefault().String()) + ")/items"
}

// LibrariesQuery selects the document libraries of a site.
func LibrariesQuery() url.Values {
	q := url.Values{}
	q.Set("$select", "Title,ItemCount,LastItemModifiedDate")
	q.Set("$filter", "BaseTemplate eq "+documentLibraryTemplate)
	return q
}

// LibrariesPath is the API path of the lists of a site.
func LibrariesPath() string { return "_api/web/lists" }

// encodeQuery percent-encodes values with %20 for spaces, which OData
// servers accept more reliably than '+'.
func encodeQuery(q url.Values) string {
	return strings.ReplaceAll(q.Encode(), "+", "%20")
}
