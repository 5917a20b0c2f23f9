package classgen

import "strings"

// NamespaceSeparator separates the segments of a derived namespace. Printers
// translate it to the separator of their target language.
const NamespaceSeparator = "."

const (
	vendorPlaceholder = "Vendor"
	namespaceSuffix   = "Configuration"
)

// DeriveNamespace maps an extension key to the namespace of its
// configuration class.
//
// The key is split on underscores and every segment gets an upper-case first
// letter. Only ASCII letters are upper-cased. The first segment names the vendor, the others are joined into the
// module name:
//
//	my_extension      -> My.Extension.Configuration
//	acme_image_tools  -> Acme.ImageTools.Configuration
//	simple            -> Vendor.Simple.Configuration
//
// Any input yields a result; an empty key gives the degenerate
// "Vendor..Configuration".
func DeriveNamespace(extensionKey string) string {
	parts := strings.Split(extensionKey, "_")
	for i, part := range parts {
		parts[i] = upperFirst(part)
	}
	vendor, module := parts[0], strings.Join(parts[1:], "")
	if module == "" {
		vendor, module = vendorPlaceholder, vendor
	}
	return strings.Join([]string{vendor, module, namespaceSuffix}, NamespaceSeparator)
}

func upperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
