// Package shorthand classifies untyped values into typed DOM shorthand nodes.
//
// Classification is structural and ordered. The first matching rule wins:
//
//  1. an array is a Fragment of its extracted items
//  2. an object with "tag" is an Element
//  3. an object with "name" and "value" is an Attribute
//  4. an object with "cData" is a CData section
//  5. an object with "comment" is a Comment
//  6. an object with "target" and "data" is a ProcessingInstruction
//  7. an object whose "content" is an array is a Fragment
//  8. a string is a Text node
//
// Anything else has no shorthand. Extract reports that as absence rather than
// failure so content lists can drop the item and keep going.
package shorthand
