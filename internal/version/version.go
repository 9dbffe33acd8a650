// ABOUTME: Build and product identification
// ABOUTME: Version is overridden at link time with -ldflags "-X"
package version

import "fmt"

// Version is the release version
var Version = "0.3.0"

const (
	// Product is the display name
	Product = "MindSpark"

	// Manufacturer identifies the publisher
	Manufacturer = "MindSpark AI"
)

// String returns "Product vVersion"
func String() string {
	return fmt.Sprintf("%s v%s", Product, Version)
}
