package accessor

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The English catalogue below is the only one shipped.
const (
	MsgClassDoc                 = "ClassDocComment"
	MsgStringProperty           = "StringPropertyComment"
	MsgStringPropertyTruncated  = "StringPropertyTruncatedComment"
	MsgNonStringProperty        = "NonStringPropertyComment"
	MsgNonStringPropertyDetail  = "NonStringPropertyDetailedComment"
	MsgResourceManagerProperty  = "ResMgrPropertyComment"
	MsgCultureProperty          = "CulturePropertyComment"
	MsgCannotCreateProperty     = "CannotCreatePropertyForResource"
	MsgCollidingProperty        = "CollidingPropertyForResource"
	MsgUnclassifiableProperty   = "UnclassifiablePropertyForResource"
	MsgInvalidIdentifier        = "InvalidIdentifier"
	MsgInvalidNamespace         = "InvalidNamespace"
	MsgGeneratedFileHeaderLine1 = "GeneratedHeader1"
	MsgGeneratedFileHeaderLine2 = "GeneratedHeader2"
	MsgWPFClassDoc              = "ClassWPFComment"
	MsgSupportedCultures        = "ListOfAvailableCultures"
	MsgResourceProvider         = "ResourceProviderComment"
	MsgGetResourceInstance      = "GetResourceInstanceComment"
	MsgChangeCulture            = "ChangeCultureComment"
	MsgDictionaryResources      = "ResourceDictionaryResourcesComment"
	MsgDictionaryCultures       = "ResourceDictionaryCultureResourcesListComment"
)

// maxArgLength caps message arguments; longer ones are cut with an ellipsis
const maxArgLength = 1024

func init() {
	en := language.English
	set := func(key, format string) {
		if err := message.SetString(en, key, format); err != nil {
			panic(err)
		}
	}

	set(MsgClassDoc, "A strongly-typed resource class, for looking up localized strings, etc.")
	set(MsgStringProperty, "Looks up a localized string similar to %s.")
	set(MsgStringPropertyTruncated, "%s [rest of string was truncated]")
	set(MsgNonStringProperty, "Looks up a localized resource of type %s.")
	set(MsgNonStringPropertyDetail, "Looks up a localized resource of type %s similar to %s.")
	set(MsgResourceManagerProperty, "Returns the cached ResourceManager instance used by this class.")
	set(MsgCultureProperty, "Overrides the current thread's CurrentUICulture property for all resource lookups using this strongly typed resource class.")
	set(MsgCannotCreateProperty, "Could not generate an accessor for resource '%s': no valid identifier can be derived from it.")
	set(MsgCollidingProperty, "Could not generate an accessor for resource '%s': another resource also maps to identifier '%s'.")
	set(MsgUnclassifiableProperty, "Could not generate an accessor for resource '%s': its type cannot be determined.")
	set(MsgInvalidIdentifier, "The name '%s' cannot be turned into a valid identifier.")
	set(MsgInvalidNamespace, "The namespace '%s' cannot be turned into a valid namespace.")
	set(MsgGeneratedFileHeaderLine1, "This code was generated by resgen from %s.")
	set(MsgGeneratedFileHeaderLine2, "Changes to this file will be lost when the code is regenerated.")
	set(MsgWPFClassDoc, "Exposes %s to XAML data binding and switches its culture at run time.")
	set(MsgSupportedCultures, "Lists the cultures that have a satellite assembly next to the application.")
	set(MsgResourceProvider, "Returns the ObjectDataProvider declared with key '%s' in the application resources.")
	set(MsgGetResourceInstance, "Returns an instance of %s for XAML bindings.")
	set(MsgChangeCulture, "Switches %s to culture and refreshes every binding when a satellite assembly exists for it.")
	set(MsgDictionaryResources, "Bind resources with {Binding Source={StaticResource %s}, Path=ResourceName}.")
	set(MsgDictionaryCultures, "Lists the cultures returned by %s.SupportedCultures.")
}

// Message formats the catalogue entry key. String arguments longer than
// 1024 characters are cut to 1021 characters followed by "...".
func Message(key string, args ...interface{}) string {
	capped := make([]interface{}, len(args))
	for i, arg := range args {
		capped[i] = arg
		if s, ok := arg.(string); ok {
			if runes := []rune(s); len(runes) > maxArgLength {
				capped[i] = string(runes[:maxArgLength-3]) + "..."
			}
		}
	}
	return message.NewPrinter(language.English).Sprintf(key, capped...)
}
