// Package articles implements educational content authoring and
// retrieval. Publishing is restricted to approved professionals by the
// transport layer's policy; this module trusts its callers on that
// point and owns everything after it: storage, search ranking, optional
// AI illustration, and author anonymization on account erasure.
package articles
