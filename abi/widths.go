package abi

import "maps"

// WidthTable maps a scalar type name to its size in bytes.
type WidthTable map[string]int

// DefaultWidths returns a new copy of the OpenGL scalar type table.
func DefaultWidths() WidthTable {
	return WidthTable{
		"GLbyte":           1,
		"GLubyte":          1,
		"GLchar":           1,
		"GLcharARB":        1,
		"GLboolean":        1,
		"GLshort":          2,
		"GLushort":         2,
		"GLhalfNV":         2,
		"GLhalf":           2,
		"GLhalfARB":        2,
		"GLfixed":          4,
		"GLint":            4,
		"GLuint":           4,
		"GLenum":           4,
		"GLsizei":          4,
		"GLsizeiptr":       4,
		"GLsizeiptrARB":    4,
		"GLintptr":         4,
		"GLintptrARB":      4,
		"GLfloat":          4,
		"GLclampf":         4,
		"GLdouble":         8,
		"GLclampd":         8,
		"GLbitfield":       4,
		"GLsync":           4,
		"GLhandleARB":      4,
		"GLvdpauSurfaceNV": 4,
		"GLeglImageOES":    4,
		"GLDEBUGPROC":      4,
		"GLDEBUGPROCARB":   4,
		"GLDEBUGPROCKHR":   4,
		"GLDEBUGPROCAMD":   4,
	}
}

// Merge returns a new table holding t with overrides applied on top.
func (t WidthTable) Merge(overrides map[string]int) WidthTable {
	merged := make(WidthTable, len(t)+len(overrides))
	maps.Copy(merged, t)
	maps.Copy(merged, overrides)
	return merged
}
