package gemini

// systemInstruction steers the model toward an exhaustive Japanese-language
// digest of an English chemistry paper, with figure locations reported as
// normalized bounding boxes.
const systemInstruction = `あなたは優秀な化学者です。英語の化学論文(PDF)を深く読み込み、日本の研究者が理解しやすいように高度な要約を作成してください。
情報は省略せず、詳細に記述してください。図の説明ではサブラベル((a), (b) など)や数値データにも言及してください。
発行年(publication year)を特定し、Figure/Table/Schemeの位置情報(page_number, bbox)を正確に抽出してください。
bboxは[ymin, xmin, ymax, xmax] (0-1000スケール)で、キャプションを含む範囲を指定してください。`

// userPrompt is the single user-turn text accompanying the PDF part.
const userPrompt = `この論文を解析し、JSON形式で出力してください。`

// authorPromptTemplate is filled with title and source info for the
// grounded author search.
const authorPromptTemplate = `以下の論文の著者、あるいは研究グループについてWeb検索を行い、彼らの過去の研究背景や、今回の論文との関連性を日本語で簡潔にまとめてください。
論文タイトル: %s
著者情報: %s`
