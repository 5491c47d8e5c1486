// Package resolve looks up catalog entities by a reference that may be either
// a UUID or a slug.
//
// The caller does not need to know which form it was given. The reference is
// classified with entityref.Detect and exactly one repository lookup is made:
// FindByID for UUIDs and FindBySlug for everything else. A lookup that finds
// nothing is reported as a *ResourceNotFoundError naming the source, so
// callers never receive a nil entity alongside a nil error.
//
//	products := resolve.New[models.Product](store.NewProductStore(db))
//	p, err := products.Resolve(ctx, "terraform-enterprise", "Product")
//	if resolve.IsResourceNotFound(err) {
//	    // 404
//	}
package resolve
