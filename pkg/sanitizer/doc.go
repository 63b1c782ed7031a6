// Package sanitizer holds small string transforms applied to user input before
// it is stored, and masking helpers applied to personal data before it is logged.
package sanitizer
