// Package plan computes where a file belongs under the destination root.
//
// RelativeDir builds the category/date/extension subdirectory for one file.
// Resolver hands out collision-free absolute paths by probing the live
// filesystem and the set of paths already promised earlier in the same run;
// the reservation set is what lets a dry run enumerate exactly the
// "name (N)" sequence a real run would produce without creating anything.
package plan
