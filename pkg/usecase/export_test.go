package usecase

// Validate is exported for testing
var Validate = validate

// Translate is exported for testing
var Translate = translate
