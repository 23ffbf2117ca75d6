package service

// Canned meal payloads keep meal planning functional when the model is
// unreachable. Each covers one failure class: no key configured, the API
// rejecting the request, and a transport-level failure.
const (
	fallbackMissingKey = `{
  "name": "Healthy Power Bowl",
  "description": "A nutritious and balanced meal with fresh ingredients",
  "ingredients": [
    "1 cup quinoa, cooked",
    "1/2 cup black beans",
    "1/4 avocado, sliced",
    "1/2 cup cherry tomatoes",
    "2 tbsp olive oil",
    "1 tbsp lemon juice",
    "Salt and pepper to taste"
  ],
  "calories": "450 kcal",
  "prepTime": "15 minutes",
  "instructions": [
    "Cook quinoa according to package instructions",
    "Rinse and heat black beans",
    "Slice avocado and tomatoes",
    "Combine all ingredients in a bowl",
    "Drizzle with olive oil and lemon juice",
    "Season with salt and pepper"
  ]
}`

	fallbackAPIError = `{
  "name": "Mediterranean Delight",
  "description": "A healthy Mediterranean-inspired meal",
  "ingredients": [
    "1 cup cooked brown rice",
    "1/2 cup chickpeas",
    "1/4 cup feta cheese",
    "1/2 cucumber, diced",
    "2 tbsp olive oil",
    "1 tbsp balsamic vinegar",
    "Fresh herbs (parsley, mint)"
  ],
  "calories": "420 kcal",
  "prepTime": "20 minutes",
  "instructions": [
    "Cook brown rice according to package instructions",
    "Rinse and drain chickpeas",
    "Dice cucumber and crumble feta",
    "Combine rice, chickpeas, cucumber in a bowl",
    "Top with feta and fresh herbs",
    "Drizzle with olive oil and balsamic vinegar"
  ]
}`

	fallbackNetworkError = `{
  "name": "Simple Veggie Bowl",
  "description": "A quick and healthy vegetable bowl",
  "ingredients": [
    "1 cup mixed greens",
    "1/2 cup roasted vegetables",
    "1/4 cup nuts or seeds",
    "2 tbsp dressing of choice"
  ],
  "calories": "350 kcal",
  "prepTime": "15 minutes",
  "instructions": [
    "Prepare mixed greens in a bowl",
    "Add roasted vegetables",
    "Top with nuts or seeds",
    "Drizzle with dressing"
  ]
}`
)
