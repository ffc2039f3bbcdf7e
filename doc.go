// Package qsip converts workspace objects into tabular form for the qSIP
// analysis pipeline.
//
// Workspace objects arrive keyed by reference ("{container}/{object}/{version}")
// with an info block carrying a type tag and a data payload whose shape
// depends on that tag. A conversion has the following stages, each with an
// interface and basic implementations in this package or its sub-packages.
//
// 1. Source
//
//    A Source yields fetched objects one at a time. The json, file and s3
//    packages read objects that were dumped to disk or archived in a bucket;
//    the workspace package fetches them live (resolving sample bodies from the
//    sample service) and can use a Cache (BoltCache or LevelCache) to avoid
//    fetching the same reference twice.
//
// 2. Dispatcher
//
//    The Dispatcher parses the type tag into a Family (exactly one family
//    keyword must occur in it) and hands the object to the Converter
//    registered for that family in a Registry. Registries are built by the
//    caller, NewDefaultRegistry holds the built-in converters.
//
// 3. Converters
//
//    SampleSetConverter lifts each sample's self node (the node_tree entry
//    whose id is the sample name) onto a flat record and classifies every
//    metadata key as user or controlled. MatrixConverter emits one record per
//    matrix cell, column-major. Both produce a Conversion: the discovered
//    field names and the record list.
//
// 4. Batch
//
//    Batch runs the dispatcher over a whole ObjectSet. One object failing does
//    not stop the rest; every failure is reported in a single error at the end
//    and no partial result is returned.
//
// 5. Sink
//
//    A Sink receives each converted object. Table turns a converted object
//    into columns and string rows; the csv and xlsx packages write tables,
//    the kafka package publishes records.
//
// Pipeline ties a Source, a Batch and a Sink together and reports counts and
// timings to a Statter such as termstat.Collector.
package qsip
