// Package language normalizes language codes between the ISO 639-1 form the
// recognizer expects and the ISO 639-2 tags media containers carry.
package language
