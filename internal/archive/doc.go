// Package archive snapshots catalogs before they are overwritten so a failed run can be rolled back.
package archive
