package plan

// The following documentation is used to describe how a parsed code is turned
// into something the executor can run against a table.
//
// A plan is always made for one table header, ie the first row of the header
// block of the table the operator is invoked with. Planning has 3 steps,
// executed sequentially
//
// 1) Sema
//    Reject what the grammar cannot, cell references outside of WHERE,
//    aggregation calls outside of AGG, join keys that are not one column.
//
// 2) Cell reference freezing (WHERE only)
//    Every #A5 style reference is looked up through the Host exactly once
//    and replaced by a constant. The value stays the same while the rows are
//    filtered, even if the host changes in between.
//
// 3) Column resolution
//    Every *name style reference is mapped to its column letter. The header
//    names are matched case insensitively after trimming spaces, a name that
//    is not in the header is taken as a letter as is, ie *b is column B.
//    References that are neither stay unresolved, the evaluator reports them
//    when a row is evaluated.
//
// Both 2) and 3) produce new trees, the parsed code can be planned again
// against another header.
//
// The plan then contains one phase per code planned,
//
//   WHERE    -> Filter
//   SELECT   -> Output
//   GROUP_BY -> GroupBy
//   AGG      -> Agg
//   ORDER_BY -> Sort
//
// The executor (package exec) drives the phases over the data rows.
