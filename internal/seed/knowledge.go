package seed

import "risk_screening_backend/internal/knowledge"

const (
	KnowledgeQuizID    = "knowledge_quiz-v1"
	KnowledgeQuizTitle = "Test Your Knowledge About Cancer"
)

// knowledgeQuestion 单选题，correct 选项记 DefaultWeight 分，其余 0 分
func knowledgeQuestion(id, text, correct, explanation string, pairs ...string) knowledge.Question {
	q := knowledge.Question{ID: id, Text: text, Explanation: explanation}
	for i := 0; i+1 < len(pairs); i += 2 {
		o := knowledge.Option{ID: pairs[i], Text: pairs[i+1]}
		if o.ID == correct {
			o.IsCorrect = true
			o.Weight = knowledge.DefaultWeight
		}
		q.Options = append(q.Options, o)
	}
	return q
}

// KnowledgeQuiz 默认癌症知识题库，每次调用返回新副本
func KnowledgeQuiz() *knowledge.Quiz {
	return &knowledge.Quiz{
		ID:      KnowledgeQuizID,
		Title:   KnowledgeQuizTitle,
		Version: 1,
		Questions: []knowledge.Question{
			knowledgeQuestion("q1", "Which lifestyle factor contributes MOST to cancer risk?", "a",
				"Tobacco accounts for roughly 30% of all cancer deaths. Smoking is the leading preventable cause of cancer worldwide.",
				"a", "Smoking", "b", "Poor diet", "c", "Lack of exercise", "d", "Stress"),
			knowledgeQuestion("q2", "What percentage of cancers can be prevented through lifestyle changes?", "b",
				"Research shows that 30-50% of cancers can be prevented through healthy lifestyle choices including diet, exercise, and avoiding tobacco.",
				"a", "10-20%", "b", "30-50%", "c", "60-70%", "d", "80-90%"),
			knowledgeQuestion("q3", "Which food group is MOST protective against cancer?", "c",
				"Fruits and vegetables contain antioxidants, vitamins, and phytochemicals that help protect cells from damage that can lead to cancer.",
				"a", "Red meat", "b", "Processed foods", "c", "Fruits and vegetables", "d", "Dairy products"),
			knowledgeQuestion("q4", "At what age should most people start regular cancer screening?", "c",
				"Most cancer screening guidelines recommend starting at age 50 for average-risk individuals, though some screenings like cervical cancer start earlier.",
				"a", "30", "b", "40", "c", "50", "d", "60"),
			knowledgeQuestion("q5", "Which statement about sun exposure and cancer is TRUE?", "c",
				"UV rays can penetrate clouds and cause skin damage leading to cancer. Daily sun protection is important year-round.",
				"a", "Only fair-skinned people get skin cancer", "b", "Tanning beds are safer than sun exposure", "c", "UV rays can cause skin cancer even on cloudy days", "d", "Sunscreen is only needed at the beach"),
			knowledgeQuestion("q6", "What is the most common cancer worldwide?", "a",
				"Lung cancer is the most commonly diagnosed cancer globally, with smoking being the primary risk factor.",
				"a", "Lung cancer", "b", "Breast cancer", "c", "Colorectal cancer", "d", "Prostate cancer"),
			knowledgeQuestion("q7", "What is the main benefit of regular cancer screening?", "b",
				"Screening detects cancer early, often before symptoms appear, which improves chances of successful treatment.",
				"a", "It guarantees you won't get cancer", "b", "It helps detect cancer early when it's easier to treat", "c", "It makes cancer disappear", "d", "It prevents all types of cancer"),
			knowledgeQuestion("q31", "Why is early cancer detection important?", "b",
				"Detecting cancer early often leads to better treatment outcomes and higher survival rates.",
				"a", "It prevents all cancers", "b", "It increases the chance of successful treatment", "c", "It eliminates the need for any treatment", "d", "It helps gain immunity"),
			knowledgeQuestion("q8", "Which habit contributes MOST to lung cancer?", "b",
				"Smoking is the leading cause of lung cancer worldwide.",
				"a", "Drinking alcohol", "b", "Smoking tobacco", "c", "Consuming sugar", "d", "Lack of sleep"),
			knowledgeQuestion("q9", "Which of these cancers is most linked to obesity?", "b",
				"Obesity increases the risk of colorectal cancer, among others.",
				"a", "Prostate cancer", "b", "Colorectal cancer", "c", "Skin cancer", "d", "Throat cancer"),
			knowledgeQuestion("q10", "True or False: If you don’t have symptoms, you don’t need cancer screening.", "b",
				"Screening is for people without symptoms to detect cancer early before it shows signs.",
				"a", "True", "b", "False"),
			knowledgeQuestion("q11", "What is the main screening test for colorectal cancer in Singapore?", "b",
				"FIT is a non-invasive test that checks for blood in stool — an early sign of colorectal cancer.",
				"a", "Pap test", "b", "Faecal Immunochemical Test (FIT)", "c", "Urine test", "d", "Blood pressure test"),
			knowledgeQuestion("q12", "Which food type is considered a cancer risk if eaten frequently?", "c",
				"Processed meats like bacon and sausages are linked to increased risk of colorectal cancer.",
				"a", "Whole grains", "b", "Fruits and vegetables", "c", "Processed meats", "d", "Legumes"),
			knowledgeQuestion("q13", "What is the most common cancer among men in Singapore?", "c",
				"Prostate cancer is one of the most common cancers in Singaporean men.",
				"a", "Liver cancer", "b", "Lung cancer", "c", "Prostate cancer", "d", "Throat cancer"),
			knowledgeQuestion("q14", "Can alcohol consumption increase cancer risk?", "b",
				"Alcohol is a known risk factor for cancers such as liver, breast, throat, and colorectal cancer.",
				"a", "No, alcohol only affects the liver", "b", "Yes, it is linked to multiple cancers", "c", "Only when mixed with tobacco", "d", "Only if consumed daily"),
			knowledgeQuestion("q15", "Which of the following is a recommended population-level cancer screening in Singapore?", "c",
				"Colonoscopy is recommended for those aged 50 and above to detect colorectal cancer early.",
				"a", "Skin cancer screening", "b", "Genetic blood test", "c", "Colonoscopy for those over 50", "d", "MRI scans"),
			knowledgeQuestion("q16", "What is the recommended action if your FIT test is positive?", "c",
				"A positive FIT means further investigation like colonoscopy is needed to check for possible cancer.",
				"a", "Ignore it if you feel fine", "b", "Repeat it in one year", "c", "Go for a follow-up colonoscopy", "d", "Change your diet"),
			knowledgeQuestion("q17", "Which organ does hepatocellular carcinoma affect?", "c",
				"Hepatocellular carcinoma is the most common type of primary liver cancer.",
				"a", "Lung", "b", "Colon", "c", "Liver", "d", "Skin"),
			knowledgeQuestion("q18", "Which of these statements about cancer is TRUE?", "c",
				"Cancer can affect anyone, regardless of age, gender, or family history.",
				"a", "Only older people get cancer", "b", "Men can't get breast cancer", "c", "Anyone can get cancer, regardless of age or gender", "d", "Cancer is always genetic"),
			knowledgeQuestion("q19", "How can exercise help prevent cancer?", "b",
				"Regular exercise helps reduce cancer risk by lowering inflammation, body fat, and improving immune response.",
				"a", "It replaces the need for screening", "b", "It boosts immunity and helps regulate weight", "c", "It removes cancer cells", "d", "It shortens treatment"),
			knowledgeQuestion("q20", "What is a common symptom of colorectal cancer?", "b",
				"Blood in stool, especially without pain, can be a warning sign of colorectal cancer.",
				"a", "Severe headaches", "b", "Blood in the stool", "c", "Dry skin", "d", "Toothache"),
			knowledgeQuestion("q21", "Which group of women should go for HPV testing every 5 years?", "b",
				"In Singapore, HPV screening is recommended every 5 years for women aged 30 and above.",
				"a", "Women under 25", "b", "Women aged 30 and above", "c", "All men", "d", "Women who already had cervical cancer"),
			knowledgeQuestion("q22", "True or False: A person with no family history of cancer is not at risk.", "b",
				"Most cancers are caused by lifestyle, age, and environment — not just inherited genes.",
				"a", "True", "b", "False"),
			knowledgeQuestion("q23", "Which cancer can sometimes be detected through a blood test called AFP?", "b",
				"AFP (Alpha-Fetoprotein) is sometimes used for liver cancer screening in high-risk individuals.",
				"a", "Colorectal cancer", "b", "Liver cancer", "c", "Lung cancer", "d", "Thyroid cancer"),
			knowledgeQuestion("q24", "Which screening test is used to detect breast cancer early?", "b",
				"Mammograms are X-ray tests used to detect early signs of breast cancer in women.",
				"a", "Pap smear", "b", "Mammogram", "c", "FIT test", "d", "Liver ultrasound"),
			knowledgeQuestion("q25", "Which lifestyle change has the GREATEST overall impact on lowering cancer risk?", "b",
				"Tobacco use is the single largest preventable cause of cancer worldwide.",
				"a", "Taking daily supplements", "b", "Quitting smoking", "c", "Washing hands often", "d", "Wearing sunglasses"),
			knowledgeQuestion("q26", "What is the main cause of cervical cancer?", "b",
				"Almost all cervical cancers are caused by long-term HPV infection.",
				"a", "Lack of exercise", "b", "Human Papillomavirus (HPV) infection", "c", "Poor sleep", "d", "Overeating"),
			knowledgeQuestion("q27", "Which of these symptoms may be an early warning sign of cancer?", "a",
				"A new or growing lump that does not go away should always be checked.",
				"a", "A persistent lump", "b", "Occasional sneeze", "c", "Short naps", "d", "Sweating after exercise"),
			knowledgeQuestion("q28", "What is the main role of the Pap smear test?", "b",
				"Pap smears are used to detect abnormal cells that may lead to cervical cancer.",
				"a", "To test for breast cancer", "b", "To detect cervical cell changes", "c", "To diagnose liver problems", "d", "To test urine for cancer"),
			knowledgeQuestion("q29", "True or False: Cancer screening should only be done once in a lifetime.", "b",
				"Regular screening based on age and risk is essential — one-time screening isn’t enough.",
				"a", "True", "b", "False"),
			knowledgeQuestion("q30", "Which cancer is often detected late because it shows few early symptoms?", "b",
				"Lung cancer often shows no symptoms until advanced stages, which is why awareness and prevention are important.",
				"a", "Colorectal cancer", "b", "Lung cancer", "c", "Skin cancer", "d", "Eye cancer"),
		},
	}
}
