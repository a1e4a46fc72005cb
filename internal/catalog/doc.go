// Package catalog reads and writes gettext PO catalogs. It keeps every
// comment, flag and entry of a parsed file so that rewriting a catalog only
// changes the translations that were filled in, and it selects the entries
// that still lack a translation.
package catalog
