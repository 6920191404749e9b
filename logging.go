package pmap

import "github.com/sirgallo/logger"

//============================================= Logging


// log is the package's structured logger, named the same way the reference mmcmap names its own:
// one named logger per package, used for the handful of structural transitions and error paths
// worth surfacing to an operator (node promotion/demotion, host hashing failures). Node algebra
// hot paths (assoc/without/find's common cases) are not logged; logging every slot insert would
// drown out the signal.
var log = logger.NewCustomLog("pmap")
