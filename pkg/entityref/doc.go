// Package entityref classifies caller-supplied entity references.
//
// Catalog entities can be addressed two ways: by their canonical UUID
// ("550e8400-e29b-41d4-a716-446655440000") or by a human-readable slug
// ("terraform-enterprise"). API handlers and CLI commands accept either form,
// so before a lookup can happen the reference has to be classified by its
// literal shape.
//
// # Usage
//
//	switch entityref.Detect(ref) {
//	case entityref.KindUUID:
//	    // look up by id
//	case entityref.KindSlug:
//	    // look up by slug
//	}
//
// Classification never fails. Anything that is not a canonical UUID falls
// back to the supplied kind, which is KindSlug for Detect.
package entityref
