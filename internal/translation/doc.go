// Package translation fills the untranslated entries of a single catalog and reports progress.
package translation
