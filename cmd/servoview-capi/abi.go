package main

/*
#include "shim.h"
*/
import "C"

// abiVersion is returned by servoview_abi_version; bump it on any
// breaking change to the exported function signatures or POD struct
// layouts in this package, matching original_source's
// XIAN_WEB_ENGINE_ABI_VERSION constant.
const abiVersion = 1

//export servoview_abi_version
func servoview_abi_version() C.uint32_t {
	return C.uint32_t(abiVersion)
}
