// Package compileinfoprint is imported by the genmapload commands for the side
// effect of logging their build revision to stderr at startup.
package compileinfoprint

import "github.com/mgijax/genmapload/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
