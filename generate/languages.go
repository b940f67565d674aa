package generate

// Output languages register themselves with target.Default
import (
	_ "github.com/teranos/resgen/target/csharp"
	_ "github.com/teranos/resgen/target/golang"
	_ "github.com/teranos/resgen/target/typescript"
)
